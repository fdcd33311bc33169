// Package thread provides a cooperative worker abstraction over dedicated
// OS threads for corekit.
//
// A Handle owns one worker at a time: the supplied body runs on a
// goroutine pinned to its own OS thread (runtime.LockOSThread), so
// priority, affinity, and thread naming apply to a real kernel thread.
// Bodies are expected to loop while !h.ShouldExit() and return promptly
// once the flag is set:
//
//	h := thread.New("janitor", func(h *thread.Handle) {
//		for !h.ShouldExit() {
//			if h.Wait(time.Second) {
//				continue // woken early, re-check the flag
//			}
//			sweep()
//		}
//	})
//	_ = h.Start()
//	...
//	_ = h.Stop(5 * time.Second)
//
// Stopping is cooperative. Stop signals the exit flag, wakes any Wait in
// progress, and blocks up to its timeout for the body to return. A body
// that ignores the flag past the timeout is abandoned: the handle is
// detached and reports not-running, but the goroutine itself cannot be
// killed and keeps whatever it holds. That degraded outcome is surfaced
// as ErrStopTimeout; design bodies so it never happens.
//
// Live handles are tracked in a Registry (an explicit object; the package
// default serves callers that don't inject one) backing RunningCount,
// StopAll, and Current.
package thread

// Package thread provides the corekit worker abstraction.
package thread

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Priority bounds for SetPriority and friends: 0 is lowest, 10 highest,
// 5 is normal.
const (
	MinPriority     = 0
	DefaultPriority = 5
	MaxPriority     = 10
)

var (
	// ErrStopTimeout reports that a worker ignored its stop request past
	// the timeout and was abandoned. The handle reads not-running, but the
	// worker goroutine keeps whatever locks or state it holds. A degraded
	// outcome, distinct from a clean cooperative exit.
	ErrStopTimeout = errors.New("thread: stop timed out")

	// ErrPriorityRange reports a priority outside [MinPriority, MaxPriority].
	ErrPriorityRange = errors.New("thread: priority out of range")

	// ErrUnsupported reports a best-effort OS control (priority, affinity,
	// thread naming) that this platform does not provide.
	ErrUnsupported = errors.New("thread: not supported on this platform")
)

// Body is the worker entry procedure. It runs once per Start on a
// dedicated OS thread and must loop while !h.ShouldExit(), returning
// promptly once the flag is observed.
type Body func(h *Handle)

// Handle wraps a single worker thread and owns its lifecycle:
// Idle → Running → (stop requested) → Exited → Idle. A stopped handle can
// be started again; at most one live worker exists per handle.
type Handle struct {
	name string
	uid  string
	body Body
	reg  *Registry
	log  *slog.Logger
	evt  *Event

	// startStop serializes Start/Stop transitions end to end.
	startStop sync.Mutex

	// state guards done, priority, and affinity. The worker's exit path
	// takes state only, never startStop, so Stop can wait under startStop
	// without deadlocking against it.
	state    sync.Mutex
	done     chan struct{}
	priority int
	affinity uint64

	running    atomic.Bool
	shouldExit atomic.Bool
	tid        atomic.Int64
}

// Option configures a Handle at construction time.
type Option func(*Handle)

// WithRegistry binds the handle to an explicit registry instead of the
// package default.
func WithRegistry(reg *Registry) Option {
	return func(h *Handle) {
		if reg != nil {
			h.reg = reg
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handle) {
		if log != nil {
			h.log = log
		}
	}
}

// WithPriority sets the priority applied when the worker starts.
func WithPriority(priority int) Option {
	return func(h *Handle) {
		h.priority = priority
	}
}

// WithAffinityMask sets the CPU affinity mask applied when the worker
// starts.
func WithAffinityMask(mask uint64) Option {
	return func(h *Handle) {
		h.affinity = mask
	}
}

// New creates an idle handle for the given body. The name is immutable
// and doubles as the OS thread name while the worker runs.
func New(name string, body Body, opts ...Option) *Handle {
	if body == nil {
		panic("thread: nil body")
	}

	h := &Handle{
		name:     name,
		uid:      ulid.Make().String(),
		body:     body,
		reg:      Default(),
		log:      slog.Default(),
		evt:      NewEvent(),
		priority: DefaultPriority,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the name set at construction.
func (h *Handle) Name() string { return h.name }

// UID returns the handle's registry identity, assigned at construction.
func (h *Handle) UID() string { return h.uid }

// ID returns the OS thread id of the live worker, or 0 while idle. The id
// changes across restarts.
func (h *Handle) ID() int64 {
	if !h.running.Load() {
		return 0
	}
	return h.tid.Load()
}

// IsRunning reports whether the worker is live: true between a successful
// Start and the observed (or forced) exit.
func (h *Handle) IsRunning() bool { return h.running.Load() }

// ShouldExit reports whether a stop has been requested. Bodies must poll
// this regularly.
func (h *Handle) ShouldExit() bool { return h.shouldExit.Load() }

// SignalShouldExit sets the exit flag without waiting. Pair it with
// Notify if the body may be blocked in Wait.
func (h *Handle) SignalShouldExit() { h.shouldExit.Store(true) }

// Wait puts the caller to sleep until Notify is called or the timeout
// elapses, reporting whether it was woken. Negative timeouts wait forever.
func (h *Handle) Wait(timeout time.Duration) bool { return h.evt.Wait(timeout) }

// Notify wakes the handle's Event, typically to nudge a body blocked in
// Wait.
func (h *Handle) Notify() { h.evt.Notify() }

// Start launches the worker if it is not already running; starting a live
// handle is a no-op. On return the worker is registered, its thread id is
// valid, and the exit flag is clear.
func (h *Handle) Start() error {
	h.startStop.Lock()
	defer h.startStop.Unlock()

	if h.running.Load() {
		return nil
	}
	return h.launch()
}

// StartWithPriority launches the worker with the given priority. If the
// worker is already running, only its priority changes; it is never
// relaunched.
func (h *Handle) StartWithPriority(priority int) error {
	if err := checkPriority(priority); err != nil {
		return err
	}

	h.startStop.Lock()
	defer h.startStop.Unlock()

	if h.running.Load() {
		return h.applyPriority(priority)
	}

	h.state.Lock()
	h.priority = priority
	h.state.Unlock()
	return h.launch()
}

// launch starts the worker goroutine and blocks until its thread id and
// bindings are in place. Callers hold startStop.
func (h *Handle) launch() error {
	h.state.Lock()
	done := make(chan struct{})
	h.done = done
	affinity := h.affinity
	priority := h.priority
	h.state.Unlock()

	h.shouldExit.Store(false)
	h.evt.Reset() // a stale notify must not wake this run's first Wait

	started := make(chan struct{})
	h.running.Store(true)
	h.reg.add(h)
	go h.main(started, done, affinity, priority)
	<-started
	return nil
}

// main is the worker entry point.
//
// The goroutine is pinned so the body owns a dedicated kernel thread;
// the thread is torn down with the goroutine because the pin is never
// released.
func (h *Handle) main(started chan<- struct{}, done chan struct{}, affinity uint64, priority int) {
	runtime.LockOSThread()

	tid := currentThreadID()
	h.tid.Store(tid)
	bindCurrent(tid, h)

	if err := setCurrentName(h.name); err != nil {
		h.log.Debug("thread name not applied", "thread", h.name, "error", err)
	}
	if affinity != 0 {
		if err := setCurrentAffinity(affinity); err != nil {
			h.log.Debug("affinity mask not applied",
				"thread", h.name, "mask", affinity, "error", err)
		}
	}
	close(started)

	if err := setThreadPriority(tid, priority); err != nil {
		h.log.Debug("priority not applied",
			"thread", h.name, "priority", priority, "error", err)
	}

	h.log.Debug("thread started", "thread", h.name, "tid", tid)

	defer func() {
		unbindCurrent(tid, h)
		h.state.Lock()
		if h.done == done {
			// Still the live run: a clean exit. Otherwise the handle was
			// detached (or already restarted) and the bookkeeping is done.
			h.running.Store(false)
			h.reg.removeClean(h)
			h.log.Debug("thread exited", "thread", h.name, "tid", tid)
		}
		h.state.Unlock()
		close(done)
	}()

	h.body(h)
}

// Stop requests a cooperative stop and blocks until the worker exits or
// the timeout elapses (negative waits forever). It sets the exit flag,
// wakes a pending Wait, and on timeout force-detaches the handle: the
// handle reads not-running and is deregistered, the worker goroutine is
// abandoned, and ErrStopTimeout is returned. A clean exit returns nil.
//
// Stop blocks its caller for up to the full timeout and must not be
// called from the handle's own body.
func (h *Handle) Stop(timeout time.Duration) error {
	h.startStop.Lock()
	defer h.startStop.Unlock()

	h.state.Lock()
	if !h.running.Load() {
		h.state.Unlock()
		return nil
	}
	done := h.done
	h.state.Unlock()

	h.shouldExit.Store(true)
	h.evt.Notify()

	if waitClosed(done, timeout) {
		return nil
	}

	h.state.Lock()
	defer h.state.Unlock()
	if h.done != done || !h.running.Load() {
		// Exited in the window between the timed wait and the lock.
		return nil
	}

	h.running.Store(false)
	h.done = nil // the abandoned run no longer owns the handle's bookkeeping
	h.reg.detach(h)
	h.log.Warn("thread ignored stop request, abandoning it",
		"thread", h.name, "timeout", timeout)
	return fmt.Errorf("stopping thread %q: %w", h.name, ErrStopTimeout)
}

// closeGrace is the best-effort stop window Close grants a still-running
// worker before abandoning it.
const closeGrace = 100 * time.Millisecond

// Close retires the handle. A handle should be stopped with a decent
// timeout before it is discarded; closing one that is still running only
// grants the worker a brief window to exit before it is forcibly
// detached, which is logged as an error and reported via ErrStopTimeout.
func (h *Handle) Close() error {
	if !h.running.Load() {
		return nil
	}
	h.log.Error("closing a running thread handle; stop it explicitly first",
		"thread", h.name)
	return h.Stop(closeGrace)
}

// WaitForExit blocks without requesting a stop, reporting whether the
// worker had exited before the timeout. Negative timeouts wait forever.
func (h *Handle) WaitForExit(timeout time.Duration) bool {
	h.state.Lock()
	if !h.running.Load() {
		h.state.Unlock()
		return true
	}
	done := h.done
	h.state.Unlock()
	return waitClosed(done, timeout)
}

// SetPriority records the priority and, if the worker is live, applies it
// best-effort. The OS refusing the change (insufficient privilege, for
// one) comes back as an error, never a panic.
func (h *Handle) SetPriority(priority int) error {
	if err := checkPriority(priority); err != nil {
		return err
	}

	h.startStop.Lock()
	defer h.startStop.Unlock()
	return h.applyPriority(priority)
}

func (h *Handle) applyPriority(priority int) error {
	h.state.Lock()
	defer h.state.Unlock()

	h.priority = priority
	if h.running.Load() {
		return setThreadPriority(h.tid.Load(), priority)
	}
	return nil
}

// SetAffinityMask records the CPU mask for the next Start. It has no
// effect on an already-running worker.
func (h *Handle) SetAffinityMask(mask uint64) {
	h.state.Lock()
	h.affinity = mask
	h.state.Unlock()
}

func checkPriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("priority %d outside [%d, %d]: %w",
			priority, MinPriority, MaxPriority, ErrPriorityRange)
	}
	return nil
}

// waitClosed waits for ch to close with Event.Wait timeout semantics.
func waitClosed(ch <-chan struct{}, timeout time.Duration) bool {
	if timeout < 0 {
		<-ch
		return true
	}
	if timeout == 0 {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}

// Sleep pauses the calling thread.
func Sleep(d time.Duration) { time.Sleep(d) }

// Yield gives up the calling thread's current time slice.
func Yield() { runtime.Gosched() }

// CurrentID returns an identifier for the calling OS thread, or 0 where
// the platform offers none. It is stable for the duration of a Body, which
// runs pinned to one thread.
func CurrentID() int64 { return currentThreadID() }

// SetCurrentName renames the calling OS thread, best effort. Platforms
// cap the length (Linux truncates to 15 bytes).
func SetCurrentName(name string) error { return setCurrentName(name) }

// SetCurrentPriority changes the calling thread's priority, best effort.
func SetCurrentPriority(priority int) error {
	if err := checkPriority(priority); err != nil {
		return err
	}
	return setThreadPriority(currentThreadID(), priority)
}

// SetCurrentAffinityMask changes the calling thread's CPU affinity,
// best effort.
func SetCurrentAffinityMask(mask uint64) error { return setCurrentAffinity(mask) }

// bindings maps live worker thread ids to their handles, backing Current
// across every registry.
var bindings sync.Map // int64 → *Handle

func bindCurrent(tid int64, h *Handle) {
	if tid != 0 {
		bindings.Store(tid, h)
	}
}

func unbindCurrent(tid int64, h *Handle) {
	if tid != 0 {
		bindings.CompareAndDelete(tid, h)
	}
}

// Current returns the handle whose worker is the calling thread, or nil
// for threads this package does not manage (the process main thread, for
// one).
func Current() *Handle {
	tid := currentThreadID()
	if tid == 0 {
		return nil
	}
	if h, ok := bindings.Load(tid); ok {
		return h.(*Handle)
	}
	return nil
}

// RunningCount returns the number of live handles in the default registry.
func RunningCount() int { return Default().RunningCount() }

// StopAll stops every live handle in the default registry, each with the
// same timeout budget.
func StopAll(timeout time.Duration) error { return Default().StopAll(timeout) }

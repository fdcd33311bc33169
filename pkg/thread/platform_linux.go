//go:build linux

// Package thread provides the corekit worker abstraction.
package thread

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func currentThreadID() int64 {
	return int64(unix.Gettid())
}

// setThreadPriority maps the 0–10 scale onto nice values: 0 → 19 (lowest),
// 5 → 0, 10 → −20. Raising priority above the default typically needs
// CAP_SYS_NICE, so failures are expected and reported, not fatal.
func setThreadPriority(tid int64, priority int) error {
	if tid == 0 {
		return nil
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, int(tid), niceFor(priority)); err != nil {
		return fmt.Errorf("setpriority tid %d: %w", tid, err)
	}
	return nil
}

func niceFor(priority int) int {
	return 19 - (39*priority)/10
}

func setCurrentAffinity(mask uint64) error {
	var set unix.CPUSet
	for cpu := 0; cpu < 64; cpu++ {
		if mask&(1<<uint(cpu)) != 0 {
			set.Set(cpu)
		}
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("sched_setaffinity: %w", err)
	}
	return nil
}

func setCurrentName(name string) error {
	// The kernel caps comm names at 16 bytes including the terminator.
	if len(name) > 15 {
		name = name[:15]
	}
	b, err := unix.BytePtrFromString(name)
	if err != nil {
		return fmt.Errorf("thread name %q: %w", name, err)
	}
	if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(b)), 0, 0, 0); err != nil {
		return fmt.Errorf("prctl(PR_SET_NAME): %w", err)
	}
	return nil
}

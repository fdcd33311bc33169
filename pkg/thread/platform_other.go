//go:build !linux

// Package thread provides the corekit worker abstraction.
package thread

import "fmt"

// Non-Linux platforms get no thread id, priority, affinity, or naming
// control here; the controls fail soft per the best-effort contract.

func currentThreadID() int64 { return 0 }

func setThreadPriority(tid int64, priority int) error {
	return fmt.Errorf("set priority %d: %w", priority, ErrUnsupported)
}

func setCurrentAffinity(mask uint64) error {
	return fmt.Errorf("set affinity %#x: %w", mask, ErrUnsupported)
}

func setCurrentName(name string) error {
	return fmt.Errorf("set thread name %q: %w", name, ErrUnsupported)
}

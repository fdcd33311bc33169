// Package thread provides the corekit worker abstraction.
package thread

import "time"

// Event is a binary, auto-reset wake primitive.
//
// Notify sets the signal; Wait consumes it. Notifies while the signal is
// already set coalesce into one wake-up. Each Handle carries one Event for
// its body's use, and Stop notifies it so a waiting body re-checks the
// exit flag promptly.
type Event struct {
	ch chan struct{}
}

// NewEvent creates an unsignalled event.
func NewEvent() *Event {
	return &Event{ch: make(chan struct{}, 1)}
}

// Wait blocks until the event is signalled or the timeout elapses,
// reporting whether it was signalled. A negative timeout waits forever;
// a zero timeout polls.
func (e *Event) Wait(timeout time.Duration) bool {
	if timeout < 0 {
		<-e.ch
		return true
	}
	if timeout == 0 {
		select {
		case <-e.ch:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-e.ch:
		return true
	case <-timer.C:
		return false
	}
}

// Notify signals the event, waking one pending or future Wait.
func (e *Event) Notify() {
	select {
	case e.ch <- struct{}{}:
	default:
	}
}

// Reset clears a pending signal without waiting.
func (e *Event) Reset() {
	select {
	case <-e.ch:
	default:
	}
}

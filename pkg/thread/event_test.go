package thread

import (
	"sync"
	"testing"
	"time"
)

func TestEventNotifyBeforeWait(t *testing.T) {
	e := NewEvent()
	e.Notify()

	if !e.Wait(0) {
		t.Error("Wait(0) = false after Notify, want true")
	}
	// The signal auto-resets once consumed.
	if e.Wait(0) {
		t.Error("Wait(0) = true on a consumed signal")
	}
}

func TestEventNotifiesCoalesce(t *testing.T) {
	e := NewEvent()
	e.Notify()
	e.Notify()
	e.Notify()

	if !e.Wait(0) {
		t.Fatal("Wait(0) = false after notifies")
	}
	if e.Wait(0) {
		t.Error("multiple notifies produced more than one wake-up")
	}
}

func TestEventWaitTimeout(t *testing.T) {
	e := NewEvent()
	start := time.Now()
	if e.Wait(20 * time.Millisecond) {
		t.Error("Wait returned signalled with no Notify")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Wait returned after %v, before the timeout", elapsed)
	}
}

func TestEventWaitForeverBlocksUntilNotify(t *testing.T) {
	// Stress the negative-timeout path: Wait(-1) must never return
	// without a paired Notify.
	e := NewEvent()

	for i := 0; i < 100; i++ {
		var wg sync.WaitGroup
		wg.Add(1)
		woke := make(chan struct{})
		go func() {
			defer wg.Done()
			if !e.Wait(-1) {
				t.Error("Wait(-1) = false")
			}
			close(woke)
		}()

		select {
		case <-woke:
			t.Fatal("Wait(-1) returned before Notify")
		case <-time.After(time.Millisecond):
		}

		e.Notify()
		wg.Wait()
	}
}

func TestEventReset(t *testing.T) {
	e := NewEvent()
	e.Notify()
	e.Reset()

	if e.Wait(0) {
		t.Error("Wait(0) = true after Reset")
	}
}

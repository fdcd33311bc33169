package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"syscall"
	"testing"
	"time"
)

func newTestHandler(timeout time.Duration) *Handler {
	return NewHandler(timeout, WithLogger(slog.New(slog.DiscardHandler)))
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(5 * time.Second)
	if h == nil {
		t.Fatal("NewHandler returned nil")
	}
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}
	if h.hooks == nil {
		t.Error("hooks should be initialized")
	}
	if h.done == nil {
		t.Error("done channel should be initialized")
	}
}

func TestHandler_OnShutdown(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	for _, name := range []string{"metrics", "threads", "logger"} {
		h.OnShutdown(name, func(ctx context.Context) error { return nil })
	}

	h.mu.Lock()
	if len(h.hooks) != 3 {
		t.Errorf("expected 3 hooks, got %d", len(h.hooks))
	}
	h.mu.Unlock()
}

func TestHandler_Done(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	select {
	case <-h.Done():
		t.Error("Done channel should not be closed initially")
	default:
	}
}

func TestHandler_Trigger_RunsHooksInReverse(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	var mu sync.Mutex
	callOrder := make([]int, 0)

	for i := 1; i <= 3; i++ {
		h.OnShutdown("hook", func(ctx context.Context) error {
			mu.Lock()
			callOrder = append(callOrder, i)
			mu.Unlock()
			return nil
		})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()

	h.Trigger()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(callOrder) != 3 {
		t.Fatalf("expected 3 hooks called, got %d", len(callOrder))
	}
	if callOrder[0] != 3 || callOrder[1] != 2 || callOrder[2] != 1 {
		t.Errorf("hooks called in order %v, want [3 2 1]", callOrder)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Wait completes")
	}
}

func TestHandler_Trigger_Idempotent(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()

	h.Trigger()
	h.Trigger()
	h.Trigger()

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}
}

func TestHandler_Wait_WithSignal(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	var called bool
	var mu sync.Mutex
	h.OnShutdown("threads", func(ctx context.Context) error {
		mu.Lock()
		called = true
		mu.Unlock()
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()

	// Give Wait time to install the signal handler.
	time.Sleep(50 * time.Millisecond)

	syscall.Kill(syscall.Getpid(), syscall.SIGINT)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if !called {
		t.Error("hook was not called")
	}
}

func TestHandler_Wait_HookError(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	hookErr := errors.New("drain failed")

	h.OnShutdown("ok", func(ctx context.Context) error { return nil })
	h.OnShutdown("broken", func(ctx context.Context) error { return hookErr })
	h.OnShutdown("also-ok", func(ctx context.Context) error { return nil })

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()

	h.Trigger()

	select {
	case err := <-errCh:
		if !errors.Is(err, hookErr) {
			t.Errorf("Wait() = %v, want wrapped %v", err, hookErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}
}

func TestHandler_HookSeesDeadline(t *testing.T) {
	h := newTestHandler(100 * time.Millisecond)

	deadlineCh := make(chan bool, 1)
	h.OnShutdown("check-deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadlineCh <- ok
		return nil
	})

	go h.Wait()
	h.Trigger()

	select {
	case ok := <-deadlineCh:
		if !ok {
			t.Error("hook context should carry a deadline")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called in time")
	}
}

func TestHandler_ConcurrentOnShutdown(t *testing.T) {
	h := newTestHandler(5 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown("hook", func(ctx context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	if len(h.hooks) != 10 {
		t.Errorf("expected 10 hooks, got %d", len(h.hooks))
	}
	h.mu.Unlock()
}

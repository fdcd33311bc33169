package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler runs registered cleanup hooks when the process is asked to stop.
type Handler struct {
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	hooks []hook

	trigger chan struct{}
	trgOnce sync.Once
	done    chan struct{}
}

type hook struct {
	name string
	fn   func(context.Context) error
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to report hook progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a shutdown handler. All hooks share a single
// deadline of timeout once shutdown begins.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		logger:  slog.Default(),
		hooks:   make([]hook, 0),
		trigger: make(chan struct{}),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// OnShutdown registers a named cleanup hook.
// Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(name string, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook{name: name, fn: fn})
}

// Trigger starts shutdown without waiting for an OS signal.
// Safe to call more than once; only the first call has an effect.
func (h *Handler) Trigger() {
	h.trgOnce.Do(func() {
		close(h.trigger)
	})
}

// Wait blocks until a termination signal arrives or Trigger is called,
// then runs all hooks. It returns the joined errors of any failed hooks.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		h.logger.Info("shutdown signal received", "signal", sig.String())
	case <-h.trigger:
		h.logger.Info("shutdown triggered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hk := hooks[i]
		if err := hk.fn(ctx); err != nil {
			h.logger.Error("shutdown hook failed",
				"hook", hk.name,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", hk.name, err))
			continue
		}
		h.logger.Debug("shutdown hook completed", "hook", hk.name)
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

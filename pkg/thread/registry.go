// Package thread provides the corekit worker abstraction.
package thread

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Registry tracks live handles. It is an explicit, injectable object so
// tests and embedders can run isolated registries; the package default
// serves everything else. A Registry is itself safe for use from any
// thread.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Handle // keyed by handle UID

	started        atomic.Uint64
	cleanExits     atomic.Uint64
	forcedDetaches atomic.Uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[string]*Handle)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide default registry.
func Default() *Registry { return defaultRegistry }

func (r *Registry) add(h *Handle) {
	r.mu.Lock()
	r.live[h.uid] = h
	r.mu.Unlock()
	r.started.Add(1)
}

func (r *Registry) removeClean(h *Handle) {
	r.mu.Lock()
	delete(r.live, h.uid)
	r.mu.Unlock()
	r.cleanExits.Add(1)
}

func (r *Registry) detach(h *Handle) {
	r.mu.Lock()
	delete(r.live, h.uid)
	r.mu.Unlock()
	r.forcedDetaches.Add(1)
}

// RunningCount returns the number of live handles.
func (r *Registry) RunningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Handles returns a snapshot of the live handles, in unspecified order.
func (r *Registry) Handles() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Handle, 0, len(r.live))
	for _, h := range r.live {
		out = append(out, h)
	}
	return out
}

// StopAll requests a stop on every live handle, sequentially and in
// unspecified order, each with the same timeout budget. Total wall time
// can reach N times the timeout if every worker misbehaves. Errors from
// individual stops are joined.
func (r *Registry) StopAll(timeout time.Duration) error {
	var errs []error
	for _, h := range r.Handles() {
		if err := h.Stop(timeout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stats is a point-in-time view of registry counters.
type Stats struct {
	Running        int
	Started        uint64
	CleanExits     uint64
	ForcedDetaches uint64
}

// Stats returns the registry's lifetime counters and live-handle count.
func (r *Registry) Stats() Stats {
	return Stats{
		Running:        r.RunningCount(),
		Started:        r.started.Load(),
		CleanExits:     r.cleanExits.Load(),
		ForcedDetaches: r.forcedDetaches.Load(),
	}
}

package metric

import (
	"log/slog"
	"testing"
	"time"

	"github.com/yndnr/corekit-go/pkg/thread"
)

func TestThreadCollector(t *testing.T) {
	threads := thread.NewRegistry()
	reg := NewRegistry(threads)

	h := thread.New("metric-worker", func(h *thread.Handle) {
		for !h.ShouldExit() {
			h.Wait(-1)
		}
	}, thread.WithRegistry(threads))
	if err := h.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	defer func() {
		if err := h.Stop(-1); err != nil {
			t.Fatalf("Stop() = %v", err)
		}
	}()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v", err)
	}

	got := map[string]float64{}
	for _, mf := range families {
		if len(mf.GetMetric()) != 1 {
			t.Fatalf("family %s has %d metrics, want 1", mf.GetName(), len(mf.GetMetric()))
		}
		m := mf.GetMetric()[0]
		switch {
		case m.GetGauge() != nil:
			got[mf.GetName()] = m.GetGauge().GetValue()
		case m.GetCounter() != nil:
			got[mf.GetName()] = m.GetCounter().GetValue()
		}
	}

	want := map[string]float64{
		"corekit_threads_running":             1,
		"corekit_threads_started_total":       1,
		"corekit_threads_stopped_clean_total": 0,
		"corekit_threads_detached_total":      0,
	}
	for name, val := range want {
		if got[name] != val {
			t.Errorf("%s = %v, want %v", name, got[name], val)
		}
	}
}

func TestThreadCollectorAfterForcedDetach(t *testing.T) {
	threads := thread.NewRegistry()
	reg := NewRegistry(threads)

	release := make(chan struct{})
	h := thread.New("stuck", func(*thread.Handle) {
		<-release
	}, thread.WithRegistry(threads), thread.WithLogger(slog.New(slog.DiscardHandler)))
	defer close(release)

	if err := h.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if err := h.Stop(20 * time.Millisecond); err == nil {
		t.Fatal("Stop() = nil, want forced-detach error")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "corekit_threads_detached_total" {
			continue
		}
		if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 1 {
			t.Errorf("corekit_threads_detached_total = %v, want 1", v)
		}
		return
	}
	t.Error("corekit_threads_detached_total not exported")
}

func TestHandler(t *testing.T) {
	reg := NewRegistry(thread.NewRegistry())
	if Handler(reg) == nil {
		t.Fatal("Handler() returned nil")
	}
}

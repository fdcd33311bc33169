// Package metric provides Prometheus metrics for corekit.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/corekit-go/pkg/thread"
)

// NewRegistry creates a Prometheus registry with the corekit collectors
// registered over the given thread registry.
func NewRegistry(threads *thread.Registry) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewThreadCollector(threads))
	return reg
}

// Handler returns an HTTP handler serving the registry's metrics in
// Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

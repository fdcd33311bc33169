// Package metric provides Prometheus metrics for corekit.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/corekit-go/pkg/thread"
)

// ThreadCollector exports a thread registry's lifecycle statistics. It
// reads the registry counters at scrape time, so it needs no hooks in the
// thread package itself.
type ThreadCollector struct {
	reg *thread.Registry

	running        *prometheus.Desc
	started        *prometheus.Desc
	cleanExits     *prometheus.Desc
	forcedDetaches *prometheus.Desc
}

// NewThreadCollector creates a collector over the given registry.
func NewThreadCollector(reg *thread.Registry) *ThreadCollector {
	return &ThreadCollector{
		reg: reg,
		running: prometheus.NewDesc(
			"corekit_threads_running",
			"Number of live worker threads.",
			nil, nil,
		),
		started: prometheus.NewDesc(
			"corekit_threads_started_total",
			"Total worker threads started.",
			nil, nil,
		),
		cleanExits: prometheus.NewDesc(
			"corekit_threads_stopped_clean_total",
			"Total worker threads that exited cooperatively.",
			nil, nil,
		),
		forcedDetaches: prometheus.NewDesc(
			"corekit_threads_detached_total",
			"Total worker threads abandoned after ignoring a stop request.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *ThreadCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.running
	ch <- c.started
	ch <- c.cleanExits
	ch <- c.forcedDetaches
}

// Collect implements prometheus.Collector.
func (c *ThreadCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.reg.Stats()
	ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, float64(stats.Running))
	ch <- prometheus.MustNewConstMetric(c.started, prometheus.CounterValue, float64(stats.Started))
	ch <- prometheus.MustNewConstMetric(c.cleanExits, prometheus.CounterValue, float64(stats.CleanExits))
	ch <- prometheus.MustNewConstMetric(c.forcedDetaches, prometheus.CounterValue, float64(stats.ForcedDetaches))
}

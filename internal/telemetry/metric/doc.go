// Package metric provides Prometheus metrics for corekit.
//
// This package implements metrics collection and exposition:
//
//   - collector.go: a collector over a thread registry
//   - handler.go: Prometheus registry assembly and the /metrics handler
//
// Metrics include:
//
//   - Live worker-thread gauge
//   - Thread start / clean-stop / forced-detach counters
//
// Metrics are exposed in Prometheus format via Handler.
package metric

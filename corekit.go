// Package corekit wires the corekit utility layer together.
//
// A Runtime owns the pieces an embedding application needs: a logger, a
// worker thread registry, a metrics registry exposing thread counters,
// and a shutdown handler that drains all workers on termination.
// Configuration is loaded from defaults, an optional YAML file,
// COREKIT_-prefixed environment variables, and programmatic overrides.
package corekit

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/corekit-go/internal/config"
	"github.com/yndnr/corekit-go/internal/infra/buildinfo"
	"github.com/yndnr/corekit-go/internal/infra/confloader"
	"github.com/yndnr/corekit-go/internal/infra/shutdown"
	"github.com/yndnr/corekit-go/internal/telemetry/logger"
	"github.com/yndnr/corekit-go/internal/telemetry/metric"
	"github.com/yndnr/corekit-go/pkg/hashmap"
	"github.com/yndnr/corekit-go/pkg/thread"
)

// Runtime bundles the corekit services for one embedding application.
type Runtime struct {
	log      logger.Logger
	threads  *thread.Registry
	metrics  *prometheus.Registry
	shutdown *shutdown.Handler

	stopTimeout  time.Duration
	defaultPrio  int
	hashmapSlots int
}

// Option configures Runtime construction.
type Option func(*settings)

type settings struct {
	configFile string
	envPrefix  string
	overrides  map[string]any
}

// WithConfigFile loads configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(s *settings) {
		s.configFile = path
	}
}

// WithEnvPrefix overrides the COREKIT_ environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(s *settings) {
		s.envPrefix = prefix
	}
}

// WithOverrides applies dotted-key configuration overrides on top of
// file and environment values, e.g. {"thread.stop_timeout": "2s"}.
func WithOverrides(data map[string]any) Option {
	return func(s *settings) {
		s.overrides = data
	}
}

// New builds a Runtime from layered configuration.
func New(opts ...Option) (*Runtime, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	loaderOpts := make([]confloader.Option, 0, 3)
	if s.configFile != "" {
		loaderOpts = append(loaderOpts, confloader.WithConfigFile(s.configFile))
	}
	if s.envPrefix != "" {
		loaderOpts = append(loaderOpts, confloader.WithEnvPrefix(s.envPrefix))
	}
	if s.overrides != nil {
		loaderOpts = append(loaderOpts, confloader.WithOverrides(s.overrides))
	}

	cfg, err := confloader.NewLoader(loaderOpts...).Load()
	if err != nil {
		return nil, err
	}

	return fromConfig(cfg), nil
}

func fromConfig(cfg *config.Config) *Runtime {
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	threads := thread.NewRegistry()

	r := &Runtime{
		log:          log,
		threads:      threads,
		metrics:      metric.NewRegistry(threads),
		stopTimeout:  cfg.Thread.StopTimeout,
		defaultPrio:  cfg.Thread.DefaultPriority,
		hashmapSlots: cfg.HashMap.InitialSlots,
	}

	r.shutdown = shutdown.NewHandler(
		drainBudget(cfg.Thread.StopTimeout),
		shutdown.WithLogger(log.Slog()),
	)
	r.shutdown.OnShutdown("threads", func(ctx context.Context) error {
		return threads.StopAll(cfg.Thread.StopTimeout)
	})

	return r
}

// drainBudget sizes the shutdown deadline so the thread drain hook can
// spend its full per-worker budget with headroom for the rest.
func drainBudget(stopTimeout time.Duration) time.Duration {
	if stopTimeout < 0 {
		// Negative means wait forever; give hooks a generous ceiling.
		return time.Minute
	}
	return 2 * stopTimeout
}

// Logger returns the runtime's structured logger.
func (r *Runtime) Logger() *slog.Logger {
	return r.log.Slog()
}

// NewThread creates a worker bound to the runtime's registry, logger,
// and configured default priority. Options may override all three.
func (r *Runtime) NewThread(name string, body thread.Body, opts ...thread.Option) *thread.Handle {
	base := []thread.Option{
		thread.WithRegistry(r.threads),
		thread.WithLogger(r.log.Slog()),
		thread.WithPriority(r.defaultPrio),
	}
	return thread.New(name, body, append(base, opts...)...)
}

// Threads returns the runtime's worker registry.
func (r *Runtime) Threads() *thread.Registry {
	return r.threads
}

// RunningThreads returns the number of currently running workers.
func (r *Runtime) RunningThreads() int {
	return r.threads.RunningCount()
}

// MetricsHandler returns an HTTP handler serving Prometheus metrics
// for the runtime's workers.
func (r *Runtime) MetricsHandler() http.Handler {
	return metric.Handler(r.metrics)
}

// Wait blocks until a termination signal arrives or Shutdown is
// called, then drains all workers.
func (r *Runtime) Wait() error {
	return r.shutdown.Wait()
}

// Shutdown asks a blocked Wait to begin teardown. Safe to call more
// than once.
func (r *Runtime) Shutdown() {
	r.shutdown.Trigger()
}

// Close drains all workers directly, giving each the configured stop
// budget. Use this when the application drives its own signal handling.
func (r *Runtime) Close() error {
	return r.threads.StopAll(r.stopTimeout)
}

// Version reports the corekit build version.
func Version() string {
	return buildinfo.String()
}

// NewMap creates a hash map sized from the runtime's configuration.
func NewMap[K comparable, V comparable](r *Runtime, opts ...hashmap.Option) *hashmap.Map[K, V] {
	base := []hashmap.Option{hashmap.WithSlots(r.hashmapSlots)}
	return hashmap.New[K, V](append(base, opts...)...)
}

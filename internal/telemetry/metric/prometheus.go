package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookcfg"

// Load results used as the "result" label.
const (
	ResultOK              = "ok"
	ResultNotFound        = "not_found"
	ResultParseError      = "parse_error"
	ResultEncodingError   = "encoding_error"
	ResultValidationError = "validation_error"
	ResultReadError       = "read_error"
)

// Reload outcomes used as the "outcome" label.
const (
	ReloadApplied   = "applied"
	ReloadUnchanged = "unchanged"
	ReloadFailed    = "failed"
	ReloadThrottled = "throttled"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Load metrics
	LoadsTotal   *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	Warnings     *prometheus.CounterVec

	// Watch metrics
	Reloads      *prometheus.CounterVec
	LastLoadTime prometheus.Gauge

	// Current configuration
	Config *Collector
}

// NewRegistry creates a new metrics registry with Go runtime and process
// collectors attached.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Configuration loads by result.",
		}, []string{"result"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent reading, parsing and decoding a configuration file.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_warnings_total",
			Help:      "Schema warnings by kind.",
		}, []string{"kind"}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Watch reloads by outcome.",
		}, []string{"outcome"}),
		LastLoadTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
		Config: NewCollector(),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.LoadsTotal,
		r.LoadDuration,
		r.Warnings,
		r.Reloads,
		r.LastLoadTime,
		r.Config,
	)

	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns an HTTP handler for the /metrics endpoint of the
// global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordLoad records one load attempt.
func (r *Registry) RecordLoad(result string, d time.Duration) {
	r.LoadsTotal.WithLabelValues(result).Inc()
	r.LoadDuration.Observe(d.Seconds())
	if result == ResultOK {
		r.LastLoadTime.SetToCurrentTime()
	}
}

// RecordWarning counts one schema warning.
func (r *Registry) RecordWarning(kind string) {
	r.Warnings.WithLabelValues(kind).Inc()
}

// RecordReload counts one watch reload.
func (r *Registry) RecordReload(outcome string) {
	r.Reloads.WithLabelValues(outcome).Inc()
}

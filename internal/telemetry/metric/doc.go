// Package metric provides Prometheus metrics for bookcfg.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, load and reload instruments, HTTP handler
//   - collector.go: a collector describing the currently loaded config
//
// Metrics are exposed at /metrics in Prometheus format by the watch
// command when it is given a listen address.
package metric

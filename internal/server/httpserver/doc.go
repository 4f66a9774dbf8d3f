// Package httpserver serves the status endpoints of `bookcfg watch`:
//
//   - /metrics: Prometheus text format
//   - /health: liveness
//   - /ready: 200 once a configuration has loaded, 503 before
//   - /config: the current typed configuration as JSON, credentials masked
//
// Every request passes through Recover, RequestID and Access.
package httpserver

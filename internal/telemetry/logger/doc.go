// Package logger provides structured logging for bookcfg.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, handler setup and the default logger
//   - context.go: the logger and the current load carried by a context
//   - redact.go: masking of credentials before they reach the output
//
// Library code takes a Logger through options or the context; the CLI
// configures the default logger from --log-level and --log-format.
package logger

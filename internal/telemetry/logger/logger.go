package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging surface used across bookcfg.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config selects the handler built by New.
type Config struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string
	// Format is text or json. Empty means text.
	Format string
	// Output receives the records. Nil means os.Stderr.
	Output io.Writer
	// AddSource records the calling file and line.
	AddSource bool
}

type logger struct {
	sl  *slog.Logger
	ctx context.Context
}

// New builds a Logger from cfg. Every record passes through the
// credential redaction in redact.go.
func New(cfg Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}

	var h slog.Handler = slog.NewTextHandler(out, opts)
	if format == "json" {
		h = slog.NewJSONHandler(out, opts)
	}
	return wrap(slog.New(h)), nil
}

func wrap(sl *slog.Logger) *logger {
	return &logger{sl: sl, ctx: context.Background()}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return wrap(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})))
}

// Slog returns the *slog.Logger behind l, for packages that take one
// directly. Foreign Logger implementations get slog.Default().
func Slog(l Logger) *slog.Logger {
	if x, ok := l.(*logger); ok {
		return x.sl
	}
	return slog.Default()
}

func (l *logger) Debug(msg string, args ...any) { l.sl.DebugContext(l.ctx, msg, args...) }
func (l *logger) Info(msg string, args ...any) { l.sl.InfoContext(l.ctx, msg, args...) }
func (l *logger) Warn(msg string, args ...any) { l.sl.WarnContext(l.ctx, msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.sl.ErrorContext(l.ctx, msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{sl: l.sl.With(args...), ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	return &logger{sl: l.sl, ctx: ctx}
}

// ParseLevel maps a level name to a slog.Level. "warning" is accepted
// for warn.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
}

// ParseFormat normalises a format name. "console" is accepted for text.
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "console":
		return "text", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("unknown log format %q (want text or json)", format)
}

var std atomic.Pointer[logger]

func init() {
	l, _ := New(Config{Level: "info"})
	std.Store(l.(*logger))
}

// SetDefault replaces the process-wide Logger returned by Default and
// FromContext. It also becomes slog's default so that third-party code
// logging through slog shares the same handler. Loggers not built by
// this package are ignored.
func SetDefault(l Logger) {
	x, ok := l.(*logger)
	if !ok {
		return
	}
	std.Store(x)
	slog.SetDefault(x.sl)
}

// Default returns the process-wide Logger.
func Default() Logger {
	return std.Load()
}

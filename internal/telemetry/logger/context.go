package logger

import "context"

type ctxKey int

const (
	loggerKey ctxKey = iota
	loadKey
)

// Load identifies one configuration load in log records.
type Load struct {
	BuildID string
	File    string
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the Logger stored by WithLogger, or Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithLoad returns a context tagged with the load being performed.
func WithLoad(ctx context.Context, ld Load) context.Context {
	return context.WithValue(ctx, loadKey, ld)
}

// LoadFromContext returns the Load stored by WithLoad.
func LoadFromContext(ctx context.Context) (Load, bool) {
	ld, ok := ctx.Value(loadKey).(Load)
	return ld, ok
}

// L returns the context's Logger with build_id and file attributes added
// for whichever of them the context's Load sets.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	ld, ok := LoadFromContext(ctx)
	if !ok {
		return l
	}

	var attrs []any
	if ld.BuildID != "" {
		attrs = append(attrs, "build_id", ld.BuildID)
	}
	if ld.File != "" {
		attrs = append(attrs, "file", ld.File)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

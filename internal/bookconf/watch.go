package bookconf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/bookcfg-go/internal/infra/confloader"
	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
	"github.com/yndnr/bookcfg-go/internal/telemetry/metric"
)

// DefaultMinInterval is the minimum time between two reloads.
const DefaultMinInterval = 500 * time.Millisecond

// ReloadFunc receives the outcome of every reload that is not skipped.
// On failure book is nil and the previous Book stays current.
type ReloadFunc func(book *Book, err error)

// Reloader keeps a Book current while its file changes on disk.
type Reloader struct {
	path     string
	opts     []Option
	limiter  *rate.Limiter
	log      logger.Logger
	metrics  *metric.Registry
	onReload ReloadFunc

	mu      sync.RWMutex
	current *Book

	pending chan struct{}
}

// ReloaderConfig configures a Reloader.
type ReloaderConfig struct {
	// MinInterval bounds the reload rate; bursts of writes collapse into
	// one reload. Zero means DefaultMinInterval.
	MinInterval time.Duration

	// OnReload is called after each applied or failed reload.
	OnReload ReloadFunc

	Logger  logger.Logger
	Metrics *metric.Registry
}

// NewReloader creates a Reloader for path. opts are passed to every Load.
func NewReloader(path string, cfg ReloaderConfig, opts ...Option) *Reloader {
	interval := cfg.MinInterval
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	all := append([]Option{WithLogger(log)}, opts...)
	if cfg.Metrics != nil {
		all = append(all, WithMetrics(cfg.Metrics))
	}

	return &Reloader{
		path:     path,
		opts:     all,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		log:      log.With("file", path),
		metrics:  cfg.Metrics,
		onReload: cfg.OnReload,
		pending:  make(chan struct{}, 1),
	}
}

// Current returns the last successfully loaded Book, or nil.
func (r *Reloader) Current() *Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Reload loads the file now and returns the outcome, one of the
// metric.Reload* values.
func (r *Reloader) Reload(ctx context.Context) string {
	book, err := Load(ctx, r.path, r.opts...)
	if err != nil {
		r.record(metric.ReloadFailed)
		r.log.Error("reload failed, keeping previous configuration", "error", err)
		r.notify(nil, err)
		return metric.ReloadFailed
	}

	r.mu.Lock()
	prev := r.current
	if prev != nil && prev.Fingerprint() == book.Fingerprint() && prev.Effective.Equal(book.Effective) {
		r.mu.Unlock()
		r.record(metric.ReloadUnchanged)
		r.log.Debug("configuration unchanged", "fingerprint", fmt.Sprintf("%016x", book.Fingerprint()))
		return metric.ReloadUnchanged
	}
	r.current = book
	r.mu.Unlock()

	r.record(metric.ReloadApplied)
	if r.metrics != nil {
		r.metrics.Config.Update(metric.Snapshot{
			File:        r.path,
			Fingerprint: book.Fingerprint(),
			ExecuteMode: string(book.Config.Execute.Mode),
			Keys:        len(book.Document.Flatten()),
			Warnings:    len(book.Warnings),
		})
	}
	r.notify(book, nil)
	return metric.ReloadApplied
}

// Notify schedules a reload. Calls made while one is already pending are
// merged into it.
func (r *Reloader) Notify() {
	select {
	case r.pending <- struct{}{}:
	default:
		r.record(metric.ReloadThrottled)
	}
}

// Run loads the file, then reloads it on every change until ctx is done.
// A failed initial load is reported through OnReload and does not stop
// the watch.
func (r *Reloader) Run(ctx context.Context) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(r.log)))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	for _, path := range append([]string{r.path}, newOptions(r.opts).overlays...) {
		if err := w.Watch(path); err != nil {
			_ = w.Stop()
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w.OnChange(func(c confloader.Change) {
		if c.Op == confloader.Removed {
			r.log.Warn("watched file removed or renamed", "path", c.Path)
		}
		r.Notify()
	})
	w.StartAsync()
	defer func() {
		if err := w.Stop(); err != nil {
			r.log.Warn("stop watcher", "error", err)
		}
	}()

	r.limiter.Allow()
	r.Reload(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.pending:
			if err := r.limiter.Wait(ctx); err != nil {
				return nil
			}
			r.Reload(ctx)
		}
	}
}

func (r *Reloader) record(outcome string) {
	if r.metrics != nil {
		r.metrics.RecordReload(outcome)
	}
}

func (r *Reloader) notify(book *Book, err error) {
	if r.onReload != nil {
		r.onReload(book, err)
	}
}

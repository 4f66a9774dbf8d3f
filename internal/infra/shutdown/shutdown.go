package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
)

type step struct {
	name string
	fn   func(context.Context) error
}

// Handler runs named shutdown steps once a stop is requested.
type Handler struct {
	timeout time.Duration
	signals []os.Signal
	log     logger.Logger

	mu    sync.Mutex
	steps []step

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to report shutdown progress.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// WithSignals replaces the default SIGINT and SIGTERM.
func WithSignals(sig ...os.Signal) Option {
	return func(h *Handler) { h.signals = sig }
}

// NewHandler creates a Handler whose steps share a deadline of timeout.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		log:     logger.Default(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnShutdown adds a step. Steps run last-registered first, so a
// resource started after another is stopped before it.
func (h *Handler) OnShutdown(name string, fn func(context.Context) error) {
	h.mu.Lock()
	h.steps = append(h.steps, step{name: name, fn: fn})
	h.mu.Unlock()
}

// Trigger requests a stop. Later calls are no-ops.
func (h *Handler) Trigger() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Wait blocks until a signal arrives, Trigger is called or ctx is done,
// then runs every step. Step failures are joined into the result; a
// failing step does not prevent the others from running.
func (h *Handler) Wait(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)
	defer signal.Stop(sigCh)

	var reason string
	select {
	case sig := <-sigCh:
		reason = sig.String()
	case <-h.stop:
		reason = "requested"
	case <-ctx.Done():
		reason = "context done"
	}
	h.log.Info("shutting down", "reason", reason, "timeout", h.timeout)

	// ctx may already be cancelled; steps get their own deadline.
	stepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	h.mu.Lock()
	steps := append([]step(nil), h.steps...)
	h.mu.Unlock()

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		h.log.Debug("shutdown step", "step", s.name)
		if err := s.fn(stepCtx); err != nil {
			h.log.Error("shutdown step failed", "step", s.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done is closed when Wait has run every step.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

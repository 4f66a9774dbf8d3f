package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yndnr/bookcfg-go/internal/bookconf"
	"github.com/yndnr/bookcfg-go/internal/bookconf/config"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
	"github.com/yndnr/bookcfg-go/internal/telemetry/metric"
)

// Source provides the configuration currently in effect.
type Source interface {
	Current() *bookconf.Book
}

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Source is the watched configuration. Required.
	Source Source

	// Metrics is served on /metrics; nil uses metric.Global().
	Metrics *metric.Registry

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter creates the status router with its middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	reg := cfg.Metrics
	if reg == nil {
		reg = metric.Global()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", reg.Handler())
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		handleReady(w, r, cfg.Source)
	})
	mux.HandleFunc("GET /config", func(w http.ResponseWriter, r *http.Request) {
		handleConfig(w, r, cfg.Source)
	})

	// Order: Recover -> RequestID -> Access -> mux
	return Chain(mux, Recover(log), RequestID(), Access(log))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func handleReady(w http.ResponseWriter, _ *http.Request, src Source) {
	book := src.Current()
	if book == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"file":     book.Path,
		"build_id": book.BuildID,
	})
}

func handleConfig(w http.ResponseWriter, _ *http.Request, src Source) {
	book := src.Current()
	if book == nil {
		writeError(w, http.StatusServiceUnavailable, domain.ErrNotLoaded)
		return
	}
	writeJSON(w, http.StatusOK, config.Sanitize(book.Config))
}

package httpserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server serves the status endpoints on a listener owned by the caller.
type Server struct {
	http *http.Server

	mu   sync.Mutex
	addr net.Addr
}

// ServerOption adjusts the underlying http.Server.
type ServerOption func(*http.Server)

// WithTimeouts sets the header read and idle timeouts.
func WithTimeouts(readHeader, idle time.Duration) ServerOption {
	return func(s *http.Server) {
		s.ReadHeaderTimeout = readHeader
		s.IdleTimeout = idle
	}
}

// New creates a Server for handler. addr is informational until Serve
// is given a listener.
func New(addr string, handler http.Handler, opts ...ServerOption) *Server {
	hs := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	for _, opt := range opts {
		opt(hs)
	}
	return &Server{http: hs}
}

// Serve accepts connections on l until Shutdown. It returns
// http.ErrServerClosed after a clean shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	s.addr = l.Addr()
	s.mu.Unlock()
	return s.http.Serve(l)
}

// Addr returns the bound address, or the configured one before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr != nil {
		return s.addr.String()
	}
	return s.http.Addr
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

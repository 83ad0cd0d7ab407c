package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openfds/fdskit/pkg/canon"
)

// Config configures the API server.
type Config struct {
	Addr string

	// Auth enables request authentication; nil disables it.
	Auth *AuthConfig

	// Canon is the default formatting policy applied by the format
	// endpoint; nil uses the zero policy.
	Canon *canon.Options
}

// Server is the HTTP formatting service.
type Server struct {
	httpServer *http.Server
	opts       *canon.Options
	metrics    *metrics
	startTime  time.Time
}

// NewServer creates the API server with its isolated metrics registry.
func NewServer(cfg Config) *Server {
	s := &Server{
		opts:      cfg.Canon,
		startTime: time.Now(),
	}

	registry := prometheus.NewRegistry()
	s.metrics = newMetrics(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/v1/status", s.statusHandler)
	mux.HandleFunc("POST /api/v1/format", s.formatHandler)
	mux.HandleFunc("POST /api/v1/parse", s.parseHandler)

	var handler http.Handler = mux
	if cfg.Auth != nil {
		handler = authMiddleware(*cfg.Auth, mux)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the server's handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// canonOptions merges the per-request strict flag into the server's
// default policy.
func (s *Server) canonOptions(strict bool) *canon.Options {
	opts := canon.Options{}
	if s.opts != nil {
		opts = *s.opts
	}
	if strict {
		opts.Strict = true
	}
	return &opts
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

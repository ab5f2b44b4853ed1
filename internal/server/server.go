// Package server exposes the generator over HTTP.
//
// Routes:
//
//	GET /v1/mondrian/{mode}.{format}?width=&height=&seed=&quality=
//	GET /v1/info
//	GET /healthz
//	GET /metrics            (when a Prometheus gatherer is configured)
//
// Pictures are served with X-Mondrian-Seed and X-Mondrian-Leaves headers so
// any response can be reproduced by repeating the request with that seed.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server context is cancelled.
const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	// MaxWidth and MaxHeight cap requested canvas sizes. Zero disables the cap.
	MaxWidth  int
	MaxHeight int

	// Logger receives one line per request. Defaults to log.Default().
	Logger *log.Logger

	// Gatherer backs /metrics. The route is not mounted when nil.
	Gatherer prometheus.Gatherer
}

// Server serves generated pictures over HTTP.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	router chi.Router
}

// New creates a server that generates through runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/mondrian/{mode}.{format}", s.handleGenerate)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Code: "NOT_FOUND", RequestID: requestIDFrom(r.Context())})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package server exposes the tiling pipeline and the preset store over HTTP.
//
// # Routes
//
//	POST   /v1/render?format=svg|png|pdf|json&frame=N&scale=S&state=paused
//	POST   /v1/layout
//	POST   /v1/preview?width=W&height=H
//	GET    /v1/presets
//	GET    /v1/presets/{name}
//	PUT    /v1/presets/{name}
//	DELETE /v1/presets/{name}
//	GET    /healthz
//
// Request bodies are presets in JSON, or in TOML or YAML when the
// Content-Type says so. Errors are returned as JSON objects with a code
// and a message; the HTTP status is derived from the error code (see
// [StatusFor]).
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	srv := server.New(runner, server.WithStore(st), server.WithLogger(logger))
//	err := srv.ListenAndServe(ctx, ":8080")
package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/store"
)

// DefaultMaxBodySize caps preset request bodies.
const DefaultMaxBodySize = 1 << 20

// DefaultShutdownTimeout bounds graceful shutdown in [Server.ListenAndServe].
const DefaultShutdownTimeout = 10 * time.Second

// Server is the HTTP front end. It is safe for concurrent use.
type Server struct {
	runner      *pipeline.Runner
	store       store.Store
	logger      *log.Logger
	maxBodySize int64
	router      chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithStore enables the preset endpoints. Without a store they answer 501.
func WithStore(st store.Store) Option { return func(s *Server) { s.store = st } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMaxBodySize overrides [DefaultMaxBodySize].
func WithMaxBodySize(n int64) Option { return func(s *Server) { s.maxBodySize = n } }

// New returns a server rendering through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:      runner,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
		r.Post("/preview", s.handlePreview)

		r.Route("/presets", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleListPresets)
			r.Get("/{name}", s.handleGetPreset)
			r.Put("/{name}", s.handleSavePreset)
			r.Delete("/{name}", s.handleDeletePreset)
		})
	})
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

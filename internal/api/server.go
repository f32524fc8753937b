// Package api implements the uxl HTTP preview service.
//
// The service accepts UXL text as the request body and answers with the parsed
// document, page layouts, the navigation map or a rendered wireframe. It
// shares the pipeline runner, and therefore the cache, with the CLI.
//
// # Routes
//
//	GET  /health
//	GET  /version
//	POST /api/parse
//	POST /api/layout?page=&width=&height=
//	POST /api/map
//	POST /api/render?page=&format=svg|png|pdf&style=&links=
//
// Every POST route accepts ?mode=permissive. Parse errors answer 422 with the
// diagnostic as JSON.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/uxl/pkg/buildinfo"
	"github.com/matzehuels/uxl/pkg/config"
	"github.com/matzehuels/uxl/pkg/pipeline"
)

// shutdownTimeout bounds the graceful shutdown of [Server.ListenAndServe].
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server for uxl.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	log    *log.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, logger *log.Logger, cfg config.Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		log:    logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)
		r.Post("/map", s.handleMap)
		r.Post("/render", s.handleRender)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return ctx.Err()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

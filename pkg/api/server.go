// Package api serves the layout pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz              liveness probe
//	GET  /version              build information
//	POST /v1/layouts           labels + options → placed layout (stored when history is enabled)
//	GET  /v1/layouts?limit=n   recent layouts, newest first
//	GET  /v1/layouts/{id}      one stored layout
//	POST /v1/render?format=f   labels + options → svg, png, pdf or json
//
// Request bodies are JSON envelopes:
//
//	{"labels": [{"text": "go", "weight": 3}], "options": {"width": 400}}
//
// A label list that fails schema validation is not an error: it places
// nothing and the response carries an empty words array. A body that is not
// a JSON object, or options that fail validation, yield 400 with a coded
// error body.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

// Server handles API requests with a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// NewServer builds the router. defaults are the options every request
// starts from before its own options are applied.
func NewServer(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:   runner,
		defaults: defaults.Clone(),
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

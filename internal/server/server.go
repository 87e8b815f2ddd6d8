// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET /health          liveness probe
//	GET /api/layout      computed cards for a range (JSON)
//
// The layout endpoint accepts from, till (YYYY-MM-DD or RFC 3339),
// from_hour and to_hour query parameters; everything else comes from the
// server's base options. Responses are produced by the JSON sink, so the
// API and the CLI emit the same shape.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/timegridlabs/timegrid/pkg/errors"
	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

// Server serves layout requests backed by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
}

// New creates a server. The base options carry the schedule source and
// geometry defaults; per-request query parameters override the range and
// hour bracket.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		base:   base,
		logger: logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/api/layout", s.handleLayout)

	return r
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// requestOptions merges query parameters into the server's base options.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	opts.Formats = []string{pipeline.FormatJSON}

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		opts.From = v
	}
	if v := q.Get("till"); v != "" {
		opts.Till = v
	}
	if v := q.Get("from_hour"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidHours, "from_hour %q is not a number", v)
		}
		opts.FromHour = n
	}
	if v := q.Get("to_hour"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidHours, "to_hour %q is not a number", v)
		}
		opts.ToHour = n
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidHours, errors.ErrCodeInvalidSchedule, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed", "status", status, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, _ = w.Write(errorBody(err))
}

func errorBody(err error) []byte {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return []byte(`{"error":{"code":"` + string(code) + `","message":` + strconv.Quote(errors.UserMessage(err)) + `}}`)
}

// logRequests is a small structured-log middleware over the charm logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

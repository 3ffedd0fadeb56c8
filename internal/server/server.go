package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
	"github.com/Aman-s12345/go-routescope/internal/generator"
	"github.com/Aman-s12345/go-routescope/internal/observability"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Addr        string
	ProjectPath string
	Registry    analyzer.Registry
	Analyzer    *analyzer.Analyzer
	Generator   *generator.Generator
	Metrics     *observability.Metrics
	Logger      logrus.FieldLogger
}

// Server exposes route listings over HTTP. Every request runs a fresh listing pass.
type Server struct {
	opts   Options
	log    logrus.FieldLogger
	self   *analyzer.MuxRegistry
	router *mux.Router
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}
	if opts.Analyzer == nil {
		opts.Analyzer = analyzer.New(analyzer.Options{Logger: opts.Logger})
	}
	if opts.Generator == nil {
		opts.Generator = generator.New(generator.Config{Title: "API Routes", Version: "1.0.0", Logger: opts.Logger})
	}

	s := &Server{
		opts: opts,
		log:  opts.Logger.WithField("component", "server"),
	}
	s.self = analyzer.NewMuxRegistry(mux.NewRouter())
	s.router = s.self.Router()
	s.registerRoutes()
	return s
}

// registerRoutes wires the API group through the self registry so it can list itself.
func (s *Server) registerRoutes() {
	s.self.Mount("/api", func(r *mux.Router) {
		r.HandleFunc("/routes", s.handleRoutes).Methods(http.MethodGet)
		r.HandleFunc("/routes/self", s.handleSelfRoutes).Methods(http.MethodGet)
		r.HandleFunc("/openapi", s.handleOpenAPI).Methods(http.MethodGet)
	})
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.opts.Metrics.Handler()).Methods(http.MethodGet)
	s.router.Use(s.instrument)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.opts.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.opts.Metrics.RecordHTTPRequest(r.Method, route, rec.status, time.Since(start))
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"route":  route,
			"status": rec.status,
		}).Debug("request served")
	})
}

// Package server exposes a laid out topic network over HTTP.
//
// A Server holds one [pipeline.View] for the lifetime of the process. Every
// request that reads or changes the selection takes the server lock, so the
// filter controller always sees events one at a time. Until a view has been
// installed with [Server.SetView] (or [Server.Load]) the data endpoints
// answer 503 and GET /status reports loading.
//
// Routes:
//
//	GET  /status                    {"loading": bool, "session": id, ...}
//	GET  /graph                     layout JSON, hidden flags included
//	GET  /legend                    sorted legend rows
//	POST /events/click/{nodeID}     node click
//	POST /events/dblclick/{nodeID}  node double click
//	POST /events/stage              background click
//	POST /events/legend/{topicID}   legend row click
//	GET  /render.svg                current view as SVG
//	GET  /metrics                   Prometheus exposition, when configured
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/topicnet/pkg/pipeline"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

// DefaultAddr is the listen address used when Options.Addr is empty.
const DefaultAddr = ":8080"

// Options configures a Server.
type Options struct {
	Addr string

	// Render controls the SVG served at /render.svg.
	Render nodelink.Options

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler

	Logger *log.Logger
}

// Server serves a single view. It is safe for concurrent use.
type Server struct {
	router  chi.Router
	addr    string
	session string
	render  nodelink.Options
	metrics http.Handler
	logger  *log.Logger

	mu      sync.Mutex
	view    *pipeline.View
	loadErr error
}

// New creates a Server with all routes configured. The server starts in the
// loading state.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		addr:    opts.Addr,
		session: uuid.NewString(),
		render:  opts.Render,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	s.router = s.buildRouter()
	return s
}

// Session returns the identifier reported by /status. It changes on every
// process start, so clients can tell a restart from a reset.
func (s *Server) Session() string { return s.session }

// SetView installs v and leaves the loading state.
func (s *Server) SetView(v *pipeline.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view, s.loadErr = v, nil
}

// SetError records a failed load. Data endpoints then answer with err and the
// status its code maps to.
func (s *Server) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Load builds the view with runner and installs it. A failure is recorded
// for /status and returned.
func (s *Server) Load(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	v, err := runner.View(ctx, opts)
	if err != nil {
		s.SetError(err)
		return err
	}
	s.SetView(v)
	s.logger.Info("view ready", "nodes", v.Dataset.Graph.NodeCount(), "edges", v.Dataset.Graph.EdgeCount())
	return nil
}

// ServeHTTP delegates to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr, "session", s.session)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/status", s.handleStatus)
	r.Get("/graph", s.handleGraph)
	r.Get("/legend", s.handleLegend)
	r.Get("/render.svg", s.handleRenderSVG)

	r.Route("/events", func(r chi.Router) {
		r.Post("/click/{nodeID}", s.handleClick)
		r.Post("/dblclick/{nodeID}", s.handleDoubleClick)
		r.Post("/stage", s.handleStage)
		r.Post("/legend/{topicID}", s.handleLegendRow)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
	"github.com/nao1215/countryflags/internal/session"
	"github.com/nao1215/countryflags/internal/view"
)

const (
	// HealthPath is the liveness endpoint.
	HealthPath = "/healthz"

	// DefaultRenderWait bounds how long a request waits for its page to settle.
	DefaultRenderWait = 5 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 15 * time.Second

	// refreshSeconds is the Refresh header sent with a page still loading.
	refreshSeconds = 1
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server and access logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderWait sets how long a request waits for its page to settle.
// Non-positive values are ignored.
func WithRenderWait(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.renderWait = d
		}
	}
}

// WithRecorder reports every navigation to r.
func WithRecorder(r session.Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// Server is the UI server.
type Server struct {
	client     session.Client
	renderer   *view.Renderer
	recorder   session.Recorder
	logger     *slog.Logger
	renderWait time.Duration

	served   *atomic.Int64
	inFlight *atomic.Int64

	handler http.Handler
}

// NewServer creates a Server that fetches through client.
func NewServer(client session.Client, renderer *view.Renderer, opts ...Option) *Server {
	s := &Server{
		client:     client,
		renderer:   renderer,
		logger:     slog.Default(),
		renderWait: DefaultRenderWait,
		served:     atomic.NewInt64(0),
		inFlight:   atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	mux.HandleFunc("GET /", s.handlePage)
	s.handler = s.accessLog(mux)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Health is the /healthz response body.
type Health struct {
	Status        string `json:"status"`
	PagesServed   int64  `json:"pages_served"`
	PagesInFlight int64  `json:"pages_in_flight"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Health{
		Status:        "ok",
		PagesServed:   s.served.Load(),
		PagesInFlight: s.inFlight.Load(),
	}); err != nil {
		s.logger.Error("failed to encode health response", "error", err)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.inFlight.Inc()
	defer s.inFlight.Dec()

	opts := []session.Option{session.WithLogger(s.logger)}
	if s.recorder != nil {
		opts = append(opts, session.WithRecorder(s.recorder))
	}
	sess := session.New(r.Context(), s.client, s.renderer, opts...)
	defer sess.Close()

	sess.Navigate(r.URL.Path)

	waitCtx, cancel := context.WithTimeout(r.Context(), s.renderWait)
	err := sess.Wait(waitCtx)
	cancel()
	settled := err == nil
	if !settled && r.Context().Err() != nil {
		return
	}

	var buf bytes.Buffer
	if err := sess.Render(&buf); err != nil {
		s.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := pageStatus(sess.Route(), sess.State())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !settled {
		w.Header().Set("Refresh", strconv.Itoa(refreshSeconds))
	}
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("failed to write page", "path", r.URL.Path, "error", err)
		return
	}
	s.served.Inc()
}

// pageStatus maps the settled page to an HTTP status code.
func pageStatus(route router.RouteID, state model.LoadState) int {
	switch {
	case route == router.RouteNotFound:
		return http.StatusNotFound
	case state == model.StateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, "query", r.URL.RawQuery)
		}
		if c := r.Header.Get("Cookie"); c != "" {
			attrs = append(attrs, "cookie", c)
		}
		s.logger.Info("request", attrs...)
	})
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving", "address", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
	"github.com/nao1215/countryflags/internal/view"
)

var (
	// ErrNoPage is returned by Render and Wait before the first navigation.
	ErrNoPage = errors.New("no page has been navigated to")
	// ErrClosed is returned by Render and Wait after Close.
	ErrClosed = errors.New("session is closed")
)

// Client is the data-access layer used by the views.
type Client interface {
	view.CountryLister
	view.CountryGetter
}

// Recorder is notified of every navigation.
type Recorder interface {
	Record(ctx context.Context, path string, route router.RouteID) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger passed to the views.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder reports navigations to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// Session is a single browsing session. It is safe for concurrent use.
type Session struct {
	ctx      context.Context
	client   Client
	renderer *view.Renderer
	router   *router.Router
	history  *router.History
	recorder Recorder
	logger   *slog.Logger

	mu      sync.Mutex
	current view.View
	match   router.Match
	closed  bool
}

// New creates a Session. Views fetch with contexts derived from ctx.
func New(ctx context.Context, client Client, renderer *view.Renderer, opts ...Option) *Session {
	s := &Session{
		ctx:      ctx,
		client:   client,
		renderer: renderer,
		router:   router.New(),
		history:  router.NewHistory(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Navigate pushes path onto the history and shows it.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.history.Push(path)
	m := s.showLocked(path)
	s.mu.Unlock()

	s.record(m)
}

// Back returns to the previous history entry. It reports false when there is
// nothing to go back to.
func (s *Session) Back() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	path, ok := s.history.Back()
	if !ok {
		s.mu.Unlock()
		return false
	}
	m := s.showLocked(path)
	s.mu.Unlock()

	s.record(m)
	return true
}

// showLocked mounts the view for path. The caller holds s.mu.
func (s *Session) showLocked(path string) router.Match {
	m := s.router.Match(path)
	s.logger.Debug("navigate", "path", path, "route", m.Route.String())

	if d, ok := s.current.(*view.Detail); ok && m.Route == router.RouteDetail {
		d.SetParams(m.Params)
		s.match = m
		return m
	}

	if s.current != nil {
		s.current.Deactivate()
	}

	var v view.View
	switch m.Route {
	case router.RouteHome:
		v = view.NewHome(s.client, s, s.renderer, s.logger)
	case router.RouteDetail:
		d := view.NewDetail(s.client, s, s.renderer, s.logger)
		d.SetParams(m.Params)
		v = d
	default:
		v = view.NewNotFound(s.renderer)
	}
	v.Activate(s.ctx)

	s.current = v
	s.match = m
	return m
}

func (s *Session) record(m router.Match) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(s.ctx, m.Path, m.Route); err != nil {
		s.logger.Warn("failed to record navigation", "path", m.Path, "error", err)
	}
}

// Route returns the route of the current page.
func (s *Session) Route() router.RouteID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Route
}

// Path returns the path of the current page.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Path
}

// History returns the navigation history, oldest first.
func (s *Session) History() []string {
	return s.history.Entries()
}

// View returns the mounted view, or nil before the first navigation.
func (s *Session) View() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) page() (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.current == nil {
		return nil, ErrNoPage
	}
	return s.current, nil
}

// State returns the load state of the current page.
func (s *Session) State() model.LoadState {
	v, err := s.page()
	if err != nil {
		return model.StateNotStarted
	}
	return v.State()
}

// Wait blocks until the current page has settled or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	v, err := s.page()
	if err != nil {
		return err
	}
	return v.Wait(ctx)
}

// Render writes the current page.
func (s *Session) Render(w io.Writer) error {
	v, err := s.page()
	if err != nil {
		return err
	}
	return v.Render(w)
}

// Close deactivates the current page. Further navigation is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.current != nil {
		s.current.Deactivate()
	}
}

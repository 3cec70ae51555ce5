package view

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
)

// Home is the country list view.
//
// State machine: NotStarted -> Loading -> Loaded | Failed. The fetch runs
// once per activation; there is no refresh.
type Home struct {
	lister   CountryLister
	nav      Navigator
	renderer *Renderer
	logger   *slog.Logger

	activateOnce sync.Once

	// Guarded by lifecycle.mu.
	lifecycle
	countries   []model.CountrySummary
	err         error
	cancel      context.CancelFunc
	deactivated bool
}

// NewHome creates a Home view. nav may be nil, in which case Select does
// nothing.
func NewHome(lister CountryLister, nav Navigator, renderer *Renderer, logger *slog.Logger) *Home {
	if logger == nil {
		logger = slog.Default()
	}
	return &Home{
		lister:   lister,
		nav:      nav,
		renderer: renderer,
		logger:   logger,
	}
}

// Activate enters Loading and lists the countries in the background.
func (h *Home) Activate(ctx context.Context) {
	h.activateOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)

		h.mu.Lock()
		if h.deactivated {
			h.mu.Unlock()
			cancel()
			return
		}
		h.cancel = cancel
		h.transition(model.StateLoading)
		h.mu.Unlock()

		go h.load(ctx)
	})
}

func (h *Home) load(ctx context.Context) {
	countries, err := h.lister.ListAll(ctx)
	result := model.From(countries, err)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.deactivated {
		h.logger.Debug("dropping country list for a deactivated view")
		return
	}

	h.countries, h.err = result.Unwrap()
	if h.err != nil {
		h.logger.Warn("failed to list countries", "error", h.err)
		h.transition(model.StateFailed)
		return
	}
	h.logger.Debug("countries loaded", "count", len(h.countries))
	h.transition(model.StateLoaded)
}

// Deactivate cancels the in-flight fetch, if any.
func (h *Home) Deactivate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deactivated = true
	if h.cancel != nil {
		h.cancel()
	}
}

// Countries returns the loaded countries, or nil before loading completes.
func (h *Home) Countries() []model.CountrySummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.countries
}

// Err returns the fetch error when the view is in StateFailed.
func (h *Home) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Select is the tile click handler: it navigates to the detail route of name.
func (h *Home) Select(name string) {
	if h.nav == nil {
		return
	}
	h.nav.Navigate(router.DetailPath(name))
}

type homePage struct {
	page
	Loading   bool
	Failed    bool
	Error     string
	Countries []model.CountrySummary
}

// Render writes the list page for the current state.
func (h *Home) Render(w io.Writer) error {
	h.mu.Lock()
	data := homePage{
		page:      h.renderer.newPage(h.renderer.tr.Text(i18n.MsgHomeTitle)),
		Loading:   !h.state.Terminal(),
		Failed:    h.state == model.StateFailed,
		Countries: h.countries,
	}
	if h.err != nil {
		data.Error = h.err.Error()
	}
	h.mu.Unlock()

	return h.renderer.execute(w, "home", data)
}

package view

import (
	"context"
	"io"
	"log/slog"

	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
)

// Detail is the single-country view, keyed on the countryName parameter.
//
// Every change of the name re-enters Loading and fetches again. Each fetch
// is tagged with a generation number and cancelled when superseded, so a
// late response for an older name can never replace the current one.
type Detail struct {
	getter   CountryGetter
	nav      Navigator
	renderer *Renderer
	logger   *slog.Logger

	// Guarded by lifecycle.mu.
	lifecycle
	parent      context.Context
	active      bool
	deactivated bool
	name        string
	generation  uint64
	country     *model.CountryDetail
	err         error
	cancel      context.CancelFunc
}

// NewDetail creates a Detail view. nav may be nil, in which case Back does
// nothing.
func NewDetail(getter CountryGetter, nav Navigator, renderer *Renderer, logger *slog.Logger) *Detail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detail{
		getter:   getter,
		nav:      nav,
		renderer: renderer,
		logger:   logger,
	}
}

// Activate mounts the view. If a country name is already set, its fetch
// starts immediately.
func (d *Detail) Activate(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active || d.deactivated {
		return
	}
	d.parent = ctx
	d.active = true
	if d.name != "" {
		d.startLocked()
	}
}

// SetParams applies the route parameters of a detail match.
func (d *Detail) SetParams(params router.Params) {
	d.SetCountryName(params.Get(router.ParamCountryName))
}

// SetCountryName changes the country shown. Setting the current name again
// is a no-op.
func (d *Detail) SetCountryName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deactivated {
		return
	}
	if name == d.name && d.state != model.StateNotStarted {
		return
	}
	d.name = name
	if d.active {
		d.startLocked()
	}
}

// startLocked cancels the current fetch and starts one for d.name.
// The caller holds d.mu.
func (d *Detail) startLocked() {
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(d.parent)
	d.cancel = cancel
	d.generation++
	d.country = nil
	d.err = nil
	d.transition(model.StateLoading)

	go d.load(ctx, d.generation, d.name)
}

func (d *Detail) load(ctx context.Context, generation uint64, name string) {
	country, err := d.getter.GetByName(ctx, name)
	result := model.From(country, err)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deactivated || generation != d.generation {
		d.logger.Debug("discarding stale country detail",
			"country", name,
			"generation", generation,
			"current", d.generation,
		)
		return
	}

	d.country, d.err = result.Unwrap()
	if d.err != nil {
		d.logger.Warn("failed to fetch country", "country", name, "error", d.err)
		d.transition(model.StateFailed)
		return
	}
	d.transition(model.StateLoaded)
}

// Deactivate cancels the in-flight fetch, if any.
func (d *Detail) Deactivate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deactivated = true
	d.active = false
	if d.cancel != nil {
		d.cancel()
	}
}

// CountryName returns the current parameter value.
func (d *Detail) CountryName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Country returns the loaded country, or nil unless the view is in
// StateLoaded.
func (d *Detail) Country() *model.CountryDetail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.country
}

// Err returns the fetch error when the view is in StateFailed.
func (d *Detail) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Back is the back control: it navigates to the list.
func (d *Detail) Back() {
	if d.nav == nil {
		return
	}
	d.nav.Navigate(router.HomePath)
}

type detailPage struct {
	page
	Loading bool
	Failed  bool
	Error   string
	Country *model.CountryDetail
}

// Render writes the detail page. While loading, the body holds nothing but
// the loading placeholder.
func (d *Detail) Render(w io.Writer) error {
	d.mu.Lock()
	data := detailPage{
		Loading: !d.state.Terminal(),
		Failed:  d.state == model.StateFailed,
		Country: d.country,
	}
	if d.err != nil {
		data.Error = d.err.Error()
	}
	title := d.name
	if data.Loading {
		title = d.renderer.tr.Text(i18n.MsgLoading)
	}
	d.mu.Unlock()

	data.page = d.renderer.newPage(title)
	return d.renderer.execute(w, "detail", data)
}

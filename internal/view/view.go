package view

import (
	"context"
	"io"

	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
)

// View is a page that can be activated, observed and rendered.
type View interface {
	// Activate mounts the view and starts its fetch, if any. Calling it more
	// than once has no further effect.
	Activate(ctx context.Context)

	// Deactivate tears the view down and cancels any in-flight fetch.
	// Results arriving afterwards are dropped.
	Deactivate()

	// State returns the current load state.
	State() model.LoadState

	// Wait blocks until the state is terminal or ctx is done.
	Wait(ctx context.Context) error

	// Render writes the view as an HTML document.
	Render(w io.Writer) error
}

// ParamSetter is implemented by views keyed on route parameters.
type ParamSetter interface {
	SetParams(params router.Params)
}

// Navigator receives navigation requests triggered by user actions.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// CountryLister lists every country.
type CountryLister interface {
	ListAll(ctx context.Context) ([]model.CountrySummary, error)
}

// CountryGetter fetches a single country by name.
type CountryGetter interface {
	GetByName(ctx context.Context, name string) (*model.CountryDetail, error)
}

var (
	_ View        = (*Home)(nil)
	_ View        = (*Detail)(nil)
	_ View        = (*NotFound)(nil)
	_ ParamSetter = (*Detail)(nil)
)

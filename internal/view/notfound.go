package view

import (
	"context"
	"io"

	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/model"
)

// NotFound is the static catch-all page.
type NotFound struct {
	renderer *Renderer
}

// NewNotFound creates the not-found page.
func NewNotFound(renderer *Renderer) *NotFound {
	return &NotFound{renderer: renderer}
}

// Activate does nothing; the page has no data.
func (n *NotFound) Activate(context.Context) {}

// Deactivate does nothing.
func (n *NotFound) Deactivate() {}

// State is always StateLoaded.
func (n *NotFound) State() model.LoadState {
	return model.StateLoaded
}

// Wait returns immediately.
func (n *NotFound) Wait(context.Context) error {
	return nil
}

// Render writes the "Page Not Found" page.
func (n *NotFound) Render(w io.Writer) error {
	title := n.renderer.tr.Text(i18n.MsgPageNotFound)
	return n.renderer.execute(w, "notfound", n.renderer.newPage(title))
}

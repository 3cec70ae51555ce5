package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/router"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the page templates for one locale.
// It is immutable after construction and safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	tr   *i18n.Translator
}

// NewRenderer parses the embedded templates with tr's labels and number
// formatting.
func NewRenderer(tr *i18n.Translator) (*Renderer, error) {
	funcs := template.FuncMap{
		"t":          tr.Text,
		"population": tr.FormatInt,
		"detailPath": router.DetailPath,
		"homePath":   func() string { return router.HomePath },
	}

	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, tr: tr}, nil
}

// Translator returns the translator the templates were built with.
func (r *Renderer) Translator() *i18n.Translator {
	return r.tr
}

// page carries the fields the shared layout needs.
type page struct {
	Lang  string
	Title string
}

func (r *Renderer) newPage(title string) page {
	return page{Lang: r.tr.Tag().String(), Title: title}
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

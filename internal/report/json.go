package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/countryflags/internal/history"
	"github.com/nao1215/countryflags/internal/model"
)

// JSONWriter writes JSON arrays using the same field names as the data
// service.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that writes compact JSON unless an
// indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output, nil)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteCountries implements Writer.
func (w *JSONWriter) WriteCountries(countries []model.CountrySummary) (int, error) {
	if countries == nil {
		countries = []model.CountrySummary{}
	}
	return w.writeJSON(countries)
}

// WriteDetails implements Writer.
func (w *JSONWriter) WriteDetails(details []*model.CountryDetail) (int, error) {
	if details == nil {
		details = []*model.CountryDetail{}
	}
	return w.writeJSON(details)
}

// WriteHistory implements Writer.
func (w *JSONWriter) WriteHistory(entries []history.Entry) (int, error) {
	if entries == nil {
		entries = []history.Entry{}
	}
	return w.writeJSON(entries)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}

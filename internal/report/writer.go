package report

import (
	"io"

	"github.com/nao1215/countryflags/internal/history"
	"github.com/nao1215/countryflags/internal/model"
)

// Writer writes CLI results to an output.
// Every method returns the number of bytes written.
type Writer interface {
	// WriteCountries writes the country list.
	WriteCountries(countries []model.CountrySummary) (int, error)

	// WriteDetails writes one or more country records.
	WriteDetails(details []*model.CountryDetail) (int, error)

	// WriteHistory writes recorded navigations, newest first.
	WriteHistory(entries []history.Entry) (int, error)
}

// Format names an output format.
type Format string

const (
	// FormatText is the aligned text format.
	FormatText Format = "text"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
	// FormatMarkdown is the Markdown format.
	FormatMarkdown Format = "markdown"
)

// NumberFormatter formats populations for display.
type NumberFormatter interface {
	FormatInt(n int64) string
}

// New returns the Writer for format. Populations in text and Markdown
// output are formatted by numbers.
func New(format Format, output io.Writer, numbers NumberFormatter) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output, numbers)
	default:
		return NewSimpleWriter(output, numbers)
	}
}

type baseWriter struct {
	output  io.Writer
	numbers NumberFormatter
}

func newBaseWriter(output io.Writer, numbers NumberFormatter) baseWriter {
	return baseWriter{output: output, numbers: numbers}
}

// timeLayout is the timestamp layout of text and Markdown output.
const timeLayout = "2006-01-02 15:04:05 MST"

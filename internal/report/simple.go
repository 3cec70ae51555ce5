package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/countryflags/internal/history"
	"github.com/nao1215/countryflags/internal/model"
)

// SimpleWriter writes aligned plain text.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter. A nil numbers prints populations
// without grouping.
func NewSimpleWriter(output io.Writer, numbers NumberFormatter) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output, numbers)}
}

// WriteCountries implements Writer.
func (w *SimpleWriter) WriteCountries(countries []model.CountrySummary) (int, error) {
	var sb strings.Builder

	if len(countries) == 0 {
		sb.WriteString("No countries to show.\n")
		return io.WriteString(w.output, sb.String())
	}

	width := 0
	for _, c := range countries {
		width = max(width, len(c.Name))
	}
	for _, c := range countries {
		fmt.Fprintf(&sb, "%-*s  %s\n", width, c.Name, c.Flag)
	}
	fmt.Fprintf(&sb, "\n%d countries\n", len(countries))

	return io.WriteString(w.output, sb.String())
}

// WriteDetails implements Writer.
func (w *SimpleWriter) WriteDetails(details []*model.CountryDetail) (int, error) {
	var sb strings.Builder

	for i, d := range details {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.Name)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", len(d.Name)))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Population: %s\n", w.population(d.Population))
		fmt.Fprintf(&sb, "Capital:    %s\n", d.Capital)
		fmt.Fprintf(&sb, "Flag:       %s\n", d.Flag)
	}

	return io.WriteString(w.output, sb.String())
}

// WriteHistory implements Writer.
func (w *SimpleWriter) WriteHistory(entries []history.Entry) (int, error) {
	var sb strings.Builder

	if len(entries) == 0 {
		sb.WriteString("No navigations recorded.\n")
		return io.WriteString(w.output, sb.String())
	}

	for _, e := range entries {
		fmt.Fprintf(&sb, "%s  %-9s  %s\n", e.VisitedAt.Local().Format(timeLayout), e.Route, e.Path)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) population(n int64) string {
	if w.numbers == nil {
		return strconv.FormatInt(n, 10)
	}
	return w.numbers.FormatInt(n)
}

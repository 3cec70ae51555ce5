package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/countryflags/internal/history"
	"github.com/nao1215/countryflags/internal/model"
)

// MarkdownWriter writes GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter. A nil numbers prints
// populations without grouping.
func NewMarkdownWriter(output io.Writer, numbers NumberFormatter) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, numbers)}
}

// WriteCountries implements Writer.
func (w *MarkdownWriter) WriteCountries(countries []model.CountrySummary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Country Flags")
	md.PlainText("")

	if len(countries) == 0 {
		md.PlainText("No countries to show.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(countries))
	for i, c := range countries {
		rows[i] = []string{c.Name, image(c.Name, c.Flag)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Flag"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// WriteDetails implements Writer. Two or more countries also get a pie
// chart of their population share.
func (w *MarkdownWriter) WriteDetails(details []*model.CountryDetail) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Country Details")
	md.PlainText("")

	rows := make([][]string, len(details))
	for i, d := range details {
		rows[i] = []string{d.Name, w.population(d.Population), d.Capital, image(d.Name, d.Flag)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Population", "Capital", "Flag"},
		Rows:   rows,
	})

	if len(details) > 1 {
		w.writePopulationChart(md, details)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writePopulationChart(md *markdown.Markdown, details []*model.CountryDetail) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Population Share"),
		piechart.WithShowData(true),
	)
	for _, d := range details {
		if d.Population > 0 {
			chart.LabelAndIntValue(d.Name, uint64(d.Population))
		}
	}

	md.PlainText("")
	md.H2("Population Share")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
}

// WriteHistory implements Writer.
func (w *MarkdownWriter) WriteHistory(entries []history.Entry) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Navigation History")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No navigations recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.VisitedAt.Local().Format(timeLayout), e.Route, "`" + e.Path + "`"}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Visited", "Route", "Path"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) population(n int64) string {
	if w.numbers == nil {
		return strconv.FormatInt(n, 10)
	}
	return w.numbers.FormatInt(n)
}

func image(alt, src string) string {
	if src == "" {
		return "-"
	}
	return "![" + alt + "](" + src + ")"
}

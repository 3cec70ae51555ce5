package view

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/model"
)

// waitTimeout bounds every Wait in this package's tests.
const waitTimeout = 2 * time.Second

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	tr, err := i18n.NewTranslator("en")
	if err != nil {
		t.Fatalf("failed to create translator: %v", err)
	}
	r, err := NewRenderer(tr)
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

// render renders v and parses the result.
func render(t *testing.T, v View) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("rendered markup does not parse: %v", err)
	}
	return doc
}

func waitSettled(t *testing.T, v View) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	if err := v.Wait(ctx); err != nil {
		t.Fatalf("view did not settle: %v", err)
	}
}

// findAll returns every element named tag under n, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// findBody returns the <body> element.
func findBody(t *testing.T, doc *html.Node) *html.Node {
	t.Helper()
	bodies := findAll(doc, "body")
	if len(bodies) != 1 {
		t.Fatalf("expected one body, got %d", len(bodies))
	}
	return bodies[0]
}

// textContent concatenates the text under n like the DOM property does.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// elementWithText returns the first tag element whose trimmed text content
// equals text.
func elementWithText(n *html.Node, tag, text string) *html.Node {
	for _, el := range findAll(n, tag) {
		if strings.TrimSpace(textContent(el)) == text {
			return el
		}
	}
	return nil
}

// recordingNavigator records navigation requests.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingNavigator) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingNavigator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// fakeLister returns a fixed result and counts calls.
type fakeLister struct {
	mu        sync.Mutex
	calls     int
	countries []model.CountrySummary
	err       error
	release   chan struct{} // if set, ListAll blocks until it is closed
}

func (f *fakeLister) ListAll(ctx context.Context) ([]model.CountrySummary, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.countries, f.err
}

func (f *fakeLister) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeGetter answers GetByName from per-name gates so tests can control the
// order in which responses arrive. Responses ignore cancellation, like a
// server that answers anyway.
type fakeGetter struct {
	mu        sync.Mutex
	calls     []string
	countries map[string]*model.CountryDetail
	errs      map[string]error
	gates     map[string]chan struct{}
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{
		countries: make(map[string]*model.CountryDetail),
		errs:      make(map[string]error),
		gates:     make(map[string]chan struct{}),
	}
}

// gate makes GetByName(name) block until the returned channel is closed.
func (f *fakeGetter) gate(name string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[name] = ch
	return ch
}

func (f *fakeGetter) GetByName(_ context.Context, name string) (*model.CountryDetail, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	gate := f.gates[name]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.countries[name], nil
}

func (f *fakeGetter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

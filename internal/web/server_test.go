package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/countryflags/internal/i18n"
	cflog "github.com/nao1215/countryflags/internal/log"
	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/router"
	"github.com/nao1215/countryflags/internal/view"
)

// MockClient implements session.Client with replaceable functions.
type MockClient struct {
	ListAllFunc   func(ctx context.Context) ([]model.CountrySummary, error)
	GetByNameFunc func(ctx context.Context, name string) (*model.CountryDetail, error)
}

func (m *MockClient) ListAll(ctx context.Context) ([]model.CountrySummary, error) {
	return m.ListAllFunc(ctx)
}

func (m *MockClient) GetByName(ctx context.Context, name string) (*model.CountryDetail, error) {
	return m.GetByNameFunc(ctx, name)
}

func newMockClient() *MockClient {
	return &MockClient{
		ListAllFunc: func(context.Context) ([]model.CountrySummary, error) {
			return []model.CountrySummary{
				{Name: "United States", Flag: "https://flagcdn.com/us.png"},
				{Name: "India", Flag: "https://flagcdn.com/in.png"},
			}, nil
		},
		GetByNameFunc: func(_ context.Context, name string) (*model.CountryDetail, error) {
			if name != "United States" {
				return nil, errors.New("Error fetching country details: Request failed with status code 404")
			}
			return &model.CountryDetail{
				Name:       "United States",
				Population: 331002651,
				Capital:    "Washington, D.C.",
				Flag:       "https://flagcdn.com/us.png",
			}, nil
		},
	}
}

func newTestRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	tr, err := i18n.NewTranslator("en")
	require.NoError(t, err)
	r, err := view.NewRenderer(tr)
	require.NoError(t, err)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandlePage_Home(t *testing.T) {
	t.Parallel()

	srv := NewServer(newMockClient(), newTestRenderer(t))
	rr := get(t, srv.Handler(), "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get("Refresh"))
	body := rr.Body.String()
	assert.Contains(t, body, "Country Flags")
	assert.Contains(t, body, `alt="United States"`)
	assert.Contains(t, body, `href="/detail/India"`)
}

func TestHandlePage_Detail(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		names []string
	)
	client := newMockClient()
	inner := client.GetByNameFunc
	client.GetByNameFunc = func(ctx context.Context, name string) (*model.CountryDetail, error) {
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
		return inner(ctx, name)
	}

	srv := NewServer(client, newTestRenderer(t))
	rr := get(t, srv.Handler(), "/detail/United%20States")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "331,002,651")
	assert.Contains(t, body, "Washington, D.C.")
	assert.Contains(t, body, "Back to Home")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"United States"}, names)
}

func TestHandlePage_NotFound(t *testing.T) {
	t.Parallel()

	srv := NewServer(newMockClient(), newTestRenderer(t))
	rr := get(t, srv.Handler(), "/unknown-route")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page Not Found")
}

func TestHandlePage_FetchFailure(t *testing.T) {
	t.Parallel()

	srv := NewServer(newMockClient(), newTestRenderer(t))
	rr := get(t, srv.Handler(), "/detail/Atlantis")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request failed with status code 404")
	assert.Contains(t, rr.Body.String(), `role="alert"`)
}

func TestHandlePage_StillLoading(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	client := newMockClient()
	client.ListAllFunc = func(ctx context.Context) ([]model.CountrySummary, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	}

	srv := NewServer(client, newTestRenderer(t), WithRenderWait(50*time.Millisecond))
	rr := get(t, srv.Handler(), "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Refresh"))
	assert.Contains(t, rr.Body.String(), "Loading...")
}

func TestHandlePage_RejectsOtherMethods(t *testing.T) {
	t.Parallel()

	srv := NewServer(newMockClient(), newTestRenderer(t))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	srv := NewServer(newMockClient(), newTestRenderer(t))
	get(t, srv.Handler(), "/")
	get(t, srv.Handler(), "/unknown-route")

	rr := get(t, srv.Handler(), HealthPath)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var h Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &h))
	assert.Equal(t, Health{Status: "ok", PagesServed: 2, PagesInFlight: 0}, h)
}

type recordedNavigation struct {
	path  string
	route router.RouteID
}

type memRecorder struct {
	mu   sync.Mutex
	navs []recordedNavigation
}

func (m *memRecorder) Record(_ context.Context, path string, route router.RouteID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navs = append(m.navs, recordedNavigation{path: path, route: route})
	return nil
}

func TestServer_RecordsNavigations(t *testing.T) {
	t.Parallel()

	rec := &memRecorder{}
	srv := NewServer(newMockClient(), newTestRenderer(t), WithRecorder(rec))
	get(t, srv.Handler(), "/")
	get(t, srv.Handler(), "/detail/India")
	get(t, srv.Handler(), HealthPath)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []recordedNavigation{
		{path: "/", route: router.RouteHome},
		{path: "/detail/India", route: router.RouteDetail},
	}, rec.navs)
}

func TestAccessLog_Redacts(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	var mu sync.Mutex
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})
	logger := cflog.NewLogger(w, true, false)

	srv := NewServer(newMockClient(), newTestRenderer(t), WithLogger(logger))
	req := httptest.NewRequest(http.MethodGet, "/unknown-route?token=abc123", nil)
	req.Header.Set("Cookie", "sid=deadbeef")
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	assert.Contains(t, out, "path=/unknown-route")
	assert.Contains(t, out, "status=404")
	assert.NotContains(t, out, "abc123")
	assert.NotContains(t, out, "deadbeef")
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(newMockClient(), newTestRenderer(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + HealthPath)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

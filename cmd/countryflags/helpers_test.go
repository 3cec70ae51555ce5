package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/countryflags/internal/model"
)

var testCountries = map[string]model.CountryDetail{
	"Tunisia": {
		Name:       "Tunisia",
		Flag:       "https://flagcdn.com/tn.png",
		Population: 11818619,
		Capital:    "Tunis",
	},
	"South Georgia": {
		Name:       "South Georgia",
		Flag:       "https://flagcdn.com/gs.png",
		Population: 30,
		Capital:    "King Edward Point",
	},
}

// newDataService starts a fake countries data service.
func newDataService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/countries", func(w http.ResponseWriter, _ *http.Request) {
		list := []model.CountrySummary{
			{Name: "South Georgia", Flag: testCountries["South Georgia"].Flag},
			{Name: "Tunisia", Flag: testCountries["Tunisia"].Flag},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("GET /api/countries/{name}", func(w http.ResponseWriter, r *http.Request) {
		d, ok := testCountries[r.PathValue("name")]
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(d)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// writeConfig writes a configuration file with the given YAML body into a
// temporary directory and returns its path. The history database is kept
// in the same directory.
func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "countryflags.yaml")
	content := "db_dir: " + dir + "\n" + body
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(ctx context.Context, t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, got)
	}
}

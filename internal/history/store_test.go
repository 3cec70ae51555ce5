package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/countryflags/internal/router"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "data", "countryflags")
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if s.Path() != filepath.Join(dir, FileName) {
			t.Errorf("Path() = %q", s.Path())
		}
	})

	t.Run("missing database without CreateIfNotExists", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		if err := s.Record(context.Background(), "/", router.RouteHome); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		s, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer s.Close()

		n, err := s.Count(context.Background())
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 navigation after reopening, got %d", n)
		}
	})
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists || !opts.EnableWAL {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	navs := []struct {
		path  string
		route router.RouteID
	}{
		{"/", router.RouteHome},
		{"/detail/United States", router.RouteDetail},
		{"/unknown-route", router.RouteNotFound},
	}
	for _, n := range navs {
		if err := s.Record(ctx, n.path, n.route); err != nil {
			t.Fatalf("Record(%q) failed: %v", n.path, err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		entries, err := s.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Path != "/unknown-route" || entries[0].Route != "not_found" {
			t.Errorf("unexpected newest entry: %+v", entries[0])
		}
		if entries[1].Path != "/detail/United States" || entries[1].Route != "detail" {
			t.Errorf("unexpected entry: %+v", entries[1])
		}
		if !entries[2].VisitedAt.Equal(base.Add(time.Minute)) {
			t.Errorf("VisitedAt = %v, want %v", entries[2].VisitedAt, base.Add(time.Minute))
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		entries, err := s.Recent(ctx, 1)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Path != "/unknown-route" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()

		if _, err := s.Recent(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("expected ErrInvalidLimit, got %v", err)
		}
	})
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"/", "/detail/India"} {
		if err := s.Record(ctx, p, router.New().Match(p).Route); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after Clear, got %d", len(entries))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "rfc3339nano", in: "2026-10-17T09:00:00.5Z", want: time.Date(2026, 10, 17, 9, 0, 0, 500000000, time.UTC)},
		{name: "sqlite", in: "2026-10-17 09:00:00", want: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "yesterday", want: time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

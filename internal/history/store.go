package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/countryflags/internal/router"
)

// FileName is the database file created inside the store directory.
const FileName = "countryflags.db"

var (
	// ErrNotFound is returned by Open when the database does not exist and
	// CreateIfNotExists is off.
	ErrNotFound = errors.New("history database not found")

	// ErrInvalidLimit is returned by Recent for a non-positive limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Store is the navigation history database.
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL enables write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens the store in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath, now: time.Now}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS navigations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		route TEXT NOT NULL,
		visited_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_navigations_visited_at ON navigations(visited_at);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Entry is one recorded navigation.
type Entry struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Route     string    `json:"route"`
	VisitedAt time.Time `json:"visited_at"`
}

// Record stores a navigation to path. It implements session.Recorder.
func (s *Store) Record(ctx context.Context, path string, route router.RouteID) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO navigations (path, route, visited_at) VALUES (?, ?, ?)`,
		path, route.String(), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record navigation: %w", err)
	}
	return nil
}

// Recent returns up to limit navigations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, route, visited_at FROM navigations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query navigations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			visitedAt string
		)
		if err := rows.Scan(&e.ID, &e.Path, &e.Route, &visitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan navigation: %w", err)
		}
		e.VisitedAt = parseTimestamp(visitedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate navigations: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored navigations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM navigations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count navigations: %w", err)
	}
	return n, nil
}

// Clear deletes every stored navigation and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM navigations`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear navigations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared navigations: %w", err)
	}
	return n, nil
}

var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time for a value in no known format.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

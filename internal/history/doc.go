// Package history stores the navigation history of the UI in SQLite.
//
// Only visited paths and their routes are stored. Country data fetched from
// the data service is never written to disk.
//
// The database is a single file (countryflags.db) opened through the
// CGO-free modernc.org/sqlite driver in WAL mode.
package history

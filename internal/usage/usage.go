// Package usage tracks how often tracks land in generated playlists.
// Counts live in their own SQLite database keyed by file path, separate
// from the scan cache, so clearing one never loses the other.
package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS track_usage (
    path TEXT PRIMARY KEY,
    times_used INTEGER NOT NULL DEFAULT 0,
    last_used TEXT NOT NULL
);
`

// Stat is one track's usage row.
type Stat struct {
	Path      string
	TimesUsed int
	LastUsed  time.Time
}

// Store persists per-track usage counts.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the usage database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create usage directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create usage schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record increments the usage count for a track path and stamps the
// current time.
func (s *Store) Record(ctx context.Context, path string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO track_usage (path, times_used, last_used) VALUES (?, 1, ?)
         ON CONFLICT(path) DO UPDATE SET
            times_used = times_used + 1,
            last_used = excluded.last_used`,
		path, now,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Get returns the usage row for one path; a never-used path comes back
// as a zero count with a zero time.
func (s *Store) Get(ctx context.Context, path string) (Stat, error) {
	var stat Stat
	var lastUsed string
	err := s.db.QueryRowContext(ctx,
		"SELECT path, times_used, last_used FROM track_usage WHERE path = ?",
		path,
	).Scan(&stat.Path, &stat.TimesUsed, &lastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return Stat{Path: path}, nil
	}
	if err != nil {
		return Stat{}, fmt.Errorf("query usage: %w", err)
	}
	stat.LastUsed = parseTimestamp(lastUsed)
	return stat, nil
}

// Top returns the most-used tracks, highest count first, ties broken by
// most recent use.
func (s *Store) Top(ctx context.Context, limit int) ([]Stat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, times_used, last_used FROM track_usage
         ORDER BY times_used DESC, last_used DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top usage: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var stat Stat
		var lastUsed string
		if err := rows.Scan(&stat.Path, &stat.TimesUsed, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		stat.LastUsed = parseTimestamp(lastUsed)
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return stats, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

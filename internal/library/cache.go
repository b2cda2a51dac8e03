package library

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the cache database was written by a different
// schema version.
var ErrSchemaMismatch = errors.New("cache schema version mismatch")

const keywordFingerprintKey = "keyword_fingerprint"

// Cache persists scanned track metadata keyed by path and mtime so repeat
// scans skip tag reads for unchanged files. Cached normalized fields depend
// on the keyword configuration, so the cache stores a fingerprint of the
// keyword lists and drops all rows when the fingerprint changes.
type Cache struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// OpenCache opens or creates the track cache at path. The keyword
// fingerprint should cover every config value that influences normalization.
func OpenCache(ctx context.Context, path, fingerprint string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, errors.New("cache is locked by another process")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path, lock: lock}
	if err := cache.initSchema(ctx); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	if err := cache.checkFingerprint(ctx, fingerprint); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return cache, nil
}

// Close releases the database connection and the cache lock.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	if c.lock != nil {
		if unlockErr := c.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Get returns the cached track for path when its stored mtime matches.
func (c *Cache) Get(ctx context.Context, path string, mtime int64) (Track, bool, error) {
	var track Track
	var cachedMtime int64
	var isLive int

	err := c.db.QueryRowContext(ctx,
		`SELECT path, mtime, artist, title, album, duration_secs,
                norm_artist, norm_title, norm_filename, is_live
         FROM tracks WHERE path = ?`,
		path,
	).Scan(&track.Path, &cachedMtime, &track.Artist, &track.Title, &track.Album,
		&track.DurationSecs, &track.NormArtist, &track.NormTitle,
		&track.NormFilename, &isLive)
	if errors.Is(err, sql.ErrNoRows) {
		return Track{}, false, nil
	}
	if err != nil {
		return Track{}, false, fmt.Errorf("query track: %w", err)
	}
	if cachedMtime != mtime {
		return Track{}, false, nil
	}
	track.IsLive = isLive != 0
	return track, true, nil
}

// Put inserts or replaces the cached row for a track.
func (c *Cache) Put(ctx context.Context, track Track, mtime int64) error {
	isLive := 0
	if track.IsLive {
		isLive = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO tracks (
            path, mtime, artist, title, album, duration_secs,
            norm_artist, norm_title, norm_filename, is_live
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            mtime = excluded.mtime,
            artist = excluded.artist,
            title = excluded.title,
            album = excluded.album,
            duration_secs = excluded.duration_secs,
            norm_artist = excluded.norm_artist,
            norm_title = excluded.norm_title,
            norm_filename = excluded.norm_filename,
            is_live = excluded.is_live`,
		track.Path, mtime, track.Artist, track.Title, track.Album,
		track.DurationSecs, track.NormArtist, track.NormTitle,
		track.NormFilename, isLive,
	)
	if err != nil {
		return fmt.Errorf("upsert track: %w", err)
	}
	return nil
}

// Prune deletes rows for paths no longer present on disk and returns the
// number removed.
func (c *Cache) Prune(ctx context.Context, keep map[string]struct{}) (int64, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT path FROM tracks")
	if err != nil {
		return 0, fmt.Errorf("list cached paths: %w", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan cached path: %w", err)
		}
		if _, ok := keep[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, fmt.Errorf("close cached paths: %w", err)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate cached paths: %w", err)
	}

	var pruned int64
	for _, path := range stale {
		res, err := c.db.ExecContext(ctx, "DELETE FROM tracks WHERE path = ?", path)
		if err != nil {
			return pruned, fmt.Errorf("delete cached path: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			pruned += n
		}
	}
	return pruned, nil
}

func (c *Cache) initSchema(ctx context.Context) error {
	var tableExists int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return c.createSchema(ctx)
	}

	var version int
	err = c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, c.path)
	}
	return nil
}

func (c *Cache) createSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// checkFingerprint clears all cached rows when the keyword fingerprint does
// not match, since cached normalized fields were derived under the old
// keyword configuration.
func (c *Cache) checkFingerprint(ctx context.Context, fingerprint string) error {
	var stored string
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM cache_meta WHERE key = ?", keywordFingerprintKey,
	).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// fallthrough to record the fingerprint below
	case err != nil:
		return fmt.Errorf("read keyword fingerprint: %w", err)
	case stored == fingerprint:
		return nil
	default:
		if _, err := c.db.ExecContext(ctx, "DELETE FROM tracks"); err != nil {
			return fmt.Errorf("clear stale cache: %w", err)
		}
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO cache_meta (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keywordFingerprintKey, fingerprint,
	)
	if err != nil {
		return fmt.Errorf("record keyword fingerprint: %w", err)
	}
	return nil
}

// KeywordFingerprint hashes the keyword lists that drive normalization into
// a stable cache invalidation token. Order within each list is irrelevant.
func KeywordFingerprint(stripKeywords, liveAlbumKeywords []string) string {
	strip := append([]string(nil), stripKeywords...)
	live := append([]string(nil), liveAlbumKeywords...)
	sort.Strings(strip)
	sort.Strings(live)

	h := sha256.New()
	h.Write([]byte(strings.Join(strip, "\x00")))
	h.Write([]byte{1})
	h.Write([]byte(strings.Join(live, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

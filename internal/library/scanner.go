package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.senan.xyz/taglib"

	"mixtape/internal/textnorm"
)

// Scanner walks a library directory and produces Track records.
type Scanner struct {
	extensions   map[string]struct{}
	strip        *textnorm.KeywordSet
	livePatterns *textnorm.KeywordSet
	cache        *Cache
	logger       *slog.Logger
}

// ScanStats summarises one scan.
type ScanStats struct {
	Tracks    int
	FromCache int
	TagErrors int
}

// NewScanner constructs a scanner. Cache may be nil to scan without
// persistence; strip and livePatterns are required.
func NewScanner(extensions []string, strip, livePatterns *textnorm.KeywordSet, cache *Cache, logger *slog.Logger) (*Scanner, error) {
	if strip == nil || livePatterns == nil {
		return nil, fmt.Errorf("scanner requires compiled keyword sets")
	}
	if len(extensions) == 0 {
		return nil, fmt.Errorf("scanner requires at least one file extension")
	}
	if logger == nil {
		logger = slog.Default()
	}
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{
		extensions:   extSet,
		strip:        strip,
		livePatterns: livePatterns,
		cache:        cache,
		logger:       logger,
	}, nil
}

// Scan walks root and returns every supported audio file as a Track. Files
// already in the cache with an unchanged mtime skip tag reading. Stale cache
// rows for files no longer on disk are pruned afterwards.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Track, ScanStats, error) {
	var stats ScanStats

	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("stat library root: %w", err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("library root %s is not a directory", root)
	}

	var tracks []Track
	seen := make(map[string]struct{})

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		fileInfo, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping file without metadata", "path", abs, "error", err)
			return nil
		}
		mtime := fileInfo.ModTime().Unix()

		if s.cache != nil {
			if cached, ok, err := s.cache.Get(ctx, abs, mtime); err != nil {
				s.logger.Warn("cache read failed", "path", abs, "error", err)
			} else if ok {
				tracks = append(tracks, cached)
				seen[abs] = struct{}{}
				stats.Tracks++
				stats.FromCache++
				return nil
			}
		}

		track := s.readTrack(abs)
		if track.Artist == "" && track.Title == "" {
			stats.TagErrors++
		}
		if s.cache != nil {
			if err := s.cache.Put(ctx, track, mtime); err != nil {
				s.logger.Warn("cache write failed", "path", abs, "error", err)
			}
		}
		tracks = append(tracks, track)
		seen[abs] = struct{}{}
		stats.Tracks++
		return nil
	})
	if walkErr != nil {
		return nil, stats, walkErr
	}

	if s.cache != nil {
		if pruned, err := s.cache.Prune(ctx, seen); err != nil {
			s.logger.Warn("cache prune failed", "error", err)
		} else if pruned > 0 {
			s.logger.Debug("pruned stale cache rows", "rows", pruned)
		}
	}

	return tracks, stats, nil
}

// readTrack reads tags and audio properties for one file and derives the
// normalized matching fields. Tag failures degrade to empty fields rather
// than errors; the matcher scores them low naturally.
func (s *Scanner) readTrack(path string) Track {
	track := Track{Path: path, DurationSecs: DurationUnknown}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		s.logger.Debug("tag read failed", "path", path, "error", err)
	} else {
		track.Artist = firstTagValue(tags, taglib.Artist, taglib.AlbumArtist, "PERFORMER")
		track.Title = firstTagValue(tags, taglib.Title)
		track.Album = firstTagValue(tags, taglib.Album)
	}

	if props, err := taglib.ReadProperties(path); err != nil {
		s.logger.Debug("properties read failed", "path", path, "error", err)
	} else if props.Length > 0 {
		track.DurationSecs = int(props.Length.Seconds())
	}

	s.deriveMatchFields(&track)
	return track
}

// deriveMatchFields populates the normalized fields and the live flag from
// the raw fields. The live flag is a scan-time heuristic: an explicit (live)
// marker in the title or the filename, or a live-album keyword in the album.
func (s *Scanner) deriveMatchFields(track *Track) {
	normTitle, titleLive := textnorm.Normalize(track.Title, s.strip)
	normArtist, _ := textnorm.Normalize(track.Artist, s.strip)
	normStem, stemLive := textnorm.Normalize(FilenameStem(track.Path), s.strip)

	track.NormTitle = normTitle
	track.NormArtist = normArtist
	track.NormFilename = normStem
	track.IsLive = titleLive || stemLive ||
		textnorm.AlbumIndicatesLive(track.Album, s.livePatterns, s.strip)
}

func firstTagValue(tags map[string][]string, keys ...string) string {
	for _, key := range keys {
		for _, value := range tags[key] {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

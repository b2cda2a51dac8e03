package playlist

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mixtape/internal/fileutil"
	"mixtape/internal/library"
)

// Item is one matched track heading for the playlist. Artist and Title
// are the display strings for the EXTINF line; they fall back to the
// input entry when the track's tags are empty.
type Item struct {
	Track  library.Track
	Artist string
	Title  string
}

// Skipped is one input entry that did not make it into the playlist.
type Skipped struct {
	Entry  Entry
	Reason string
}

// Result reports what was written. MPDCopyErr is non-nil when the MPD
// copy failed; that failure does not fail the write as a whole.
type Result struct {
	M3UPath     string
	MissingPath string
	MPDCopyPath string
	MPDCopyErr  error
}

// Writer serializes match results to disk.
type Writer struct {
	// LibraryRoot makes playlist paths relative when tracks live under
	// it; tracks outside fall back to absolute paths.
	LibraryRoot string

	// MPDPlaylistDir receives a copy of the playlist when non-empty.
	MPDPlaylistDir string

	// MissingDir receives the missing-tracks report when any input was
	// skipped.
	MissingDir string

	Logger *slog.Logger
}

// Write emits the M3U file at m3uPath, copies it into the MPD directory
// when configured, and writes the missing-tracks report when anything
// was skipped. sourceDesc names the input (file path or prompt) for the
// report header.
func (w *Writer) Write(m3uPath string, items []Item, skipped []Skipped, sourceDesc string, totalInputs int) (Result, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var result Result

	if err := os.MkdirAll(filepath.Dir(m3uPath), 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	content := w.renderM3U(items, logger)
	if err := os.WriteFile(m3uPath, []byte(content), 0o644); err != nil {
		return result, fmt.Errorf("write playlist %s: %w", m3uPath, err)
	}
	result.M3UPath = m3uPath
	logger.Info("playlist written",
		"path", m3uPath,
		"tracks", len(items),
		"inputs", totalInputs)

	if w.MPDPlaylistDir != "" {
		target := filepath.Join(w.MPDPlaylistDir, filepath.Base(m3uPath))
		if err := copyToMPD(m3uPath, target); err != nil {
			logger.Warn("mpd copy failed", "target", target, "error", err)
			result.MPDCopyErr = err
		} else {
			result.MPDCopyPath = target
			logger.Info("playlist copied to mpd directory", "path", target)
		}
	}

	if len(skipped) > 0 {
		missingPath, err := w.writeMissingReport(m3uPath, skipped, sourceDesc)
		if err != nil {
			return result, err
		}
		result.MissingPath = missingPath
		logger.Info("missing tracks report written",
			"path", missingPath,
			"skipped", len(skipped))
	}

	return result, nil
}

// renderM3U builds the extended M3U content. Each item gets an EXTINF
// line with the duration in seconds (or -1 when unknown) and an
// "Artist - Title" display, then the track path relative to the library
// root when possible.
func (w *Writer) renderM3U(items []Item, logger *slog.Logger) string {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n",
			item.Track.DurationSecs, item.Artist, item.Title)
		sb.WriteString(w.playlistPath(item.Track.Path, logger))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// playlistPath prefers a path relative to the library root so playlists
// survive when the library is mounted elsewhere.
func (w *Writer) playlistPath(trackPath string, logger *slog.Logger) string {
	if w.LibraryRoot != "" {
		if rel, err := filepath.Rel(w.LibraryRoot, trackPath); err == nil &&
			rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
		logger.Warn("track outside library root, using absolute path", "path", trackPath)
	}
	return filepath.ToSlash(trackPath)
}

func (w *Writer) writeMissingReport(m3uPath string, skipped []Skipped, sourceDesc string) (string, error) {
	if err := os.MkdirAll(w.MissingDir, 0o755); err != nil {
		return "", fmt.Errorf("create missing-tracks directory: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(m3uPath), filepath.Ext(m3uPath))
	path := filepath.Join(w.MissingDir, stem+"-missing-tracks.txt")

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Input playlist: %s\n", sourceDesc)
	fmt.Fprintf(&sb, "# Generated M3U: %s\n", m3uPath)
	fmt.Fprintf(&sb, "# Date Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&sb, "# %d tracks from input not found/skipped:\n", len(skipped))
	sb.WriteString(strings.Repeat("-", 30) + "\n")
	for _, s := range skipped {
		fmt.Fprintf(&sb, "%s (Reason: %s)\n", s.Entry, s.Reason)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write missing tracks report: %w", err)
	}
	return path, nil
}

func copyToMPD(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return fileutil.CopyFile(src, dst)
}

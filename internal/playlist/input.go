package playlist

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Entry is one input line to resolve, in playlist order.
type Entry struct {
	Artist string
	Title  string
}

// String renders the entry the way the input file spells it.
func (e Entry) String() string {
	return e.Artist + " - " + e.Title
}

// ReadInputFile parses an "Artist - Title" list from a file.
func ReadInputFile(path string, logger *slog.Logger) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input playlist: %w", err)
	}
	defer f.Close()
	entries, err := ParseInput(f, logger)
	if err != nil {
		return nil, fmt.Errorf("read input playlist %s: %w", path, err)
	}
	return entries, nil
}

// ParseInput reads "Artist - Title" lines. Blank lines and lines starting
// with '#' are skipped; lines without the " - " separator are logged and
// dropped rather than failing the whole list.
func ParseInput(r io.Reader, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, ok := ParseEntry(line)
		if !ok {
			logger.Warn("skipping malformed input line", "line", lineNum, "text", line)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseEntry splits one "Artist - Title" line on the first " - "
// separator.
func ParseEntry(line string) (Entry, bool) {
	artist, title, ok := strings.Cut(line, " - ")
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Artist: strings.TrimSpace(artist),
		Title:  strings.TrimSpace(title),
	}, true
}

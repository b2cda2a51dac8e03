package library

import (
	"path/filepath"
	"strings"
)

// DurationUnknown marks a track whose audio properties could not be read.
const DurationUnknown = -1

// Track is one audio file in the scanned library. Raw tag fields are kept
// for display; the Norm* fields exist only for matching and are always
// derived from the raw fields of the same scan.
type Track struct {
	Path         string
	Artist       string
	Title        string
	Album        string
	DurationSecs int

	NormArtist   string
	NormTitle    string
	NormFilename string
	IsLive       bool
}

// FilenameStem returns the base filename without its extension.
func FilenameStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayTitle returns the tag title, falling back to the filename stem for
// untagged files.
func (t Track) DisplayTitle() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return FilenameStem(t.Path)
}

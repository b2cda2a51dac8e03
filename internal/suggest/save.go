package suggest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mixtape/internal/playlist"
)

// SaveSuggestion writes the prompt and the generated entries to a
// uniquely named file under dir, so past suggestions can be replayed as
// input lists later. Returns the file path.
func SaveSuggestion(dir, prompt string, entries []playlist.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create suggestions directory: %w", err)
	}
	name := fmt.Sprintf("suggestion-%s-%s.txt",
		time.Now().Format("2006-01-02"), uuid.NewString())
	path := filepath.Join(dir, name)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Prompt: %s\n", prompt)
	fmt.Fprintf(&sb, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	for _, entry := range entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write suggestion file: %w", err)
	}
	return path, nil
}

// ParseSaved reads a saved suggestion file back into entries. The header
// lines are comments, so the regular input parser handles it.
func ParseSaved(path string) ([]playlist.Entry, error) {
	return playlist.ReadInputFile(path, nil)
}

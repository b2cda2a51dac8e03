package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTrack drops a fake audio file at path. The bytes are not a valid
// audio container, so tag reads fail and the scanner falls back to
// filename-derived fields, which keeps tests hermetic.
func WriteTrack(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

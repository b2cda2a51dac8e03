package playlist

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseInput(t *testing.T) {
	input := strings.Join([]string{
		"# a comment",
		"",
		"Radiohead - Creep",
		"  The Beatles - Let It Be  ",
		"no separator here",
		"Simon & Garfunkel - The Boxer - Live",
	}, "\n")

	entries, err := ParseInput(strings.NewReader(input), discardLogger())
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	want := []Entry{
		{Artist: "Radiohead", Title: "Creep"},
		{Artist: "The Beatles", Title: "Let It Be"},
		{Artist: "Simon & Garfunkel", Title: "The Boxer - Live"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseEntrySplitsOnFirstSeparator(t *testing.T) {
	entry, ok := ParseEntry("AC/DC - Back In Black - Remastered")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if entry.Artist != "AC/DC" || entry.Title != "Back In Black - Remastered" {
		t.Fatalf("entry = %+v", entry)
	}

	if _, ok := ParseEntry("just some words"); ok {
		t.Fatal("expected parse to fail without separator")
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("Radiohead - Creep\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := ReadInputFile(path, discardLogger())
	if err != nil {
		t.Fatalf("ReadInputFile: %v", err)
	}
	if len(entries) != 1 || entries[0].String() != "Radiohead - Creep" {
		t.Fatalf("entries = %+v", entries)
	}

	if _, err := ReadInputFile(filepath.Join(t.TempDir(), "absent.txt"), discardLogger()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

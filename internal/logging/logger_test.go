package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("matched track", slog.String("artist", "Radiohead"), slog.Int("score", 97))
	line := buf.String()
	if !strings.Contains(line, "INFO matched track") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "artist=Radiohead") || !strings.Contains(line, "score=97") {
		t.Fatalf("missing attrs in line: %q", line)
	}

	buf.Reset()
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be suppressed at info level, got %q", buf.String())
	}
}

func TestNewConsoleQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("msg", slog.String("title", "Karma Police"))
	if !strings.Contains(buf.String(), `title="Karma Police"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("scan", slog.Int("tracks", 3))
	line := buf.String()
	if !strings.Contains(line, `"msg":"scan"`) || !strings.Contains(line, `"tracks":3`) {
		t.Fatalf("unexpected json line: %q", line)
	}
	if !strings.Contains(line, `"level":"debug"`) {
		t.Fatalf("expected lowercase level, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewMirrorsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "mixtape.log")
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file missing entry: %q", string(data))
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatal("writer missing entry")
	}
}

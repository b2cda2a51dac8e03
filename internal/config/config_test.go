package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixtape/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "music") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Matching.Threshold != 75 {
		t.Fatalf("unexpected default threshold: %d", cfg.Matching.Threshold)
	}
	if cfg.Matching.LivePenaltyFactor != 0.75 {
		t.Fatalf("unexpected default live penalty: %g", cfg.Matching.LivePenaltyFactor)
	}
	if cfg.Matching.Interactive != "auto" {
		t.Fatalf("unexpected default interactive mode: %q", cfg.Matching.Interactive)
	}
	if len(cfg.Matching.StripKeywords) == 0 {
		t.Fatal("expected default strip keywords")
	}
	if len(cfg.Library.Extensions) != 4 || cfg.Library.Extensions[0] != ".mp3" {
		t.Fatalf("unexpected default extensions: %v", cfg.Library.Extensions)
	}
	if !cfg.Library.CacheEnabled {
		t.Fatal("expected library cache enabled by default")
	}
	if cfg.Playlist.OutputNameFormat != "{basename:cp}_{YYYY}-{MM}-{DD}.m3u" {
		t.Fatalf("unexpected output name format: %q", cfg.Playlist.OutputNameFormat)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
library_dir = "` + dir + `"

[library]
extensions = ["MP3", "flac", " "]

[matching]
threshold = 80
interactive = "NEVER"

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to load, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Matching.Threshold != 80 {
		t.Fatalf("unexpected threshold: %d", cfg.Matching.Threshold)
	}
	if cfg.Matching.Interactive != "never" {
		t.Fatalf("expected interactive normalized to never, got %q", cfg.Matching.Interactive)
	}
	want := []string{".mp3", ".flac"}
	if len(cfg.Library.Extensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Library.Extensions)
	}
	for i, ext := range want {
		if cfg.Library.Extensions[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Library.Extensions[i], ext)
		}
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected logging format normalized to json, got %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"threshold high", func(c *config.Config) { c.Matching.Threshold = 101 }, "matching.threshold"},
		{"threshold low", func(c *config.Config) { c.Matching.Threshold = -1 }, "matching.threshold"},
		{"penalty high", func(c *config.Config) { c.Matching.LivePenaltyFactor = 1.5 }, "matching.live_penalty_factor"},
		{"penalty low", func(c *config.Config) { c.Matching.LivePenaltyFactor = -0.1 }, "matching.live_penalty_factor"},
		{"bad interactive", func(c *config.Config) { c.Matching.Interactive = "maybe" }, "matching.interactive"},
		{"bad live regex", func(c *config.Config) { c.Matching.LiveAlbumKeywords = []string{"("} }, "matching.live_album_keywords"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Fatal("sample config missing [matching] section")
	}

	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}

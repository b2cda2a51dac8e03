// Package testsupport provides shared helpers for tests: temp-dir backed
// configurations and fake library files.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mixtape/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config rooted in unique temp directories per test.
// The library directory is created; interactivity is off so commands never
// block on a prompt.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.OutputDir = filepath.Join(base, "playlists")
	cfg.Paths.MissingDir = filepath.Join(base, "missing")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SuggestionsDir = filepath.Join(base, "suggestions")
	cfg.Library.CachePath = filepath.Join(base, "cache", "library_index.db")
	cfg.Matching.Interactive = "never"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library dir: %v", err)
	}
	return &cfg
}

// WithThreshold overrides the matching threshold on the test config.
func WithThreshold(threshold int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.Threshold = threshold
	}
}

// WithCacheDisabled turns the library scan cache off.
func WithCacheDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Library.CacheEnabled = false
		cfg.Library.CachePath = ""
	}
}

// WriteConfigFile serializes cfg as TOML at path, creating parent
// directories as needed.
func WriteConfigFile(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}

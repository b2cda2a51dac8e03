package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir     string `toml:"library_dir"`
	OutputDir      string `toml:"output_dir"`
	MissingDir     string `toml:"missing_dir"`
	LogDir         string `toml:"log_dir"`
	MPDPlaylistDir string `toml:"mpd_playlist_dir"`
	SuggestionsDir string `toml:"suggestions_dir"`
}

// Library contains configuration for scanning and caching the audio library.
type Library struct {
	Extensions   []string `toml:"extensions"`
	CacheEnabled bool     `toml:"cache_enabled"`
	CachePath    string   `toml:"cache_path"`
}

// Matching contains the knobs consumed by the matching engine.
type Matching struct {
	// Threshold is the minimum adjusted score [0,100] for an automatic match.
	Threshold int `toml:"threshold"`
	// LivePenaltyFactor multiplies a live candidate's score when the input
	// did not ask for a live version. Range [0.0,1.0]; lower is harsher.
	LivePenaltyFactor float64 `toml:"live_penalty_factor"`
	// StripKeywords are parenthetical suffixes treated as noise during
	// normalization ("remix", "radio edit", ...).
	StripKeywords []string `toml:"strip_keywords"`
	// LiveAlbumKeywords are regex patterns that mark an album as a live
	// recording ("\blive\b", "live at", ...).
	LiveAlbumKeywords []string `toml:"live_album_keywords"`
	// Interactive is "auto" (prompt only on a TTY), "always", or "never".
	Interactive string `toml:"interactive"`
}

// Playlist contains output formatting configuration.
type Playlist struct {
	// OutputNameFormat supports {basename:transforms} plus {YYYY} {YY} {MM}
	// {DD} {hh} {mm} {ss} tokens.
	OutputNameFormat string `toml:"output_name_format"`
}

// Suggest contains configuration for the AI playlist suggestion client.
type Suggest struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	Model           string `toml:"model"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	SaveSuggestions bool   `toml:"save_suggestions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mixtape.
//
// Configuration sections by subsystem:
//   - Paths: library root and output directories
//   - Library: scan extensions and the persistent index cache
//   - Matching: threshold, live penalty, keyword lists, interactivity
//   - Playlist: output filename templating
//   - Suggest: AI suggestion endpoint settings
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Library  Library  `toml:"library"`
	Matching Matching `toml:"matching"`
	Playlist Playlist `toml:"playlist"`
	Suggest  Suggest  `toml:"suggest"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/mixtape/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. It also reports the
// resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mixtape.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directories mixtape writes to. The
// library directory is deliberately not created: a missing library root is a
// configuration mistake, not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.MissingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Suggest.SaveSuggestions && strings.TrimSpace(c.Paths.SuggestionsDir) != "" {
		if err := os.MkdirAll(c.Paths.SuggestionsDir, 0o755); err != nil {
			return fmt.Errorf("create suggestions directory %q: %w", c.Paths.SuggestionsDir, err)
		}
	}
	if c.Library.CacheEnabled && strings.TrimSpace(c.Library.CachePath) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Library.CachePath), 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves ~ prefixes and makes the path absolute. An empty
// path stays empty.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}

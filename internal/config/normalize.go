package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizePlaylist()
	c.normalizeSuggest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.MissingDir, err = ExpandPath(c.Paths.MissingDir); err != nil {
		return fmt.Errorf("paths.missing_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.MPDPlaylistDir, err = ExpandPath(c.Paths.MPDPlaylistDir); err != nil {
		return fmt.Errorf("paths.mpd_playlist_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SuggestionsDir) == "" {
		c.Paths.SuggestionsDir = defaultSuggestionsDir
	}
	if c.Paths.SuggestionsDir, err = ExpandPath(c.Paths.SuggestionsDir); err != nil {
		return fmt.Errorf("paths.suggestions_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Library.Extensions = normalized

	if strings.TrimSpace(c.Library.CachePath) == "" {
		c.Library.CachePath = defaultCachePath
	}
	var err error
	if c.Library.CachePath, err = ExpandPath(c.Library.CachePath); err != nil {
		return fmt.Errorf("library.cache_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if len(c.Matching.StripKeywords) == 0 {
		c.Matching.StripKeywords = defaultStripKeywords()
	}
	if len(c.Matching.LiveAlbumKeywords) == 0 {
		c.Matching.LiveAlbumKeywords = defaultLiveAlbumKeywords()
	}
	c.Matching.Interactive = strings.ToLower(strings.TrimSpace(c.Matching.Interactive))
	if c.Matching.Interactive == "" {
		c.Matching.Interactive = defaultInteractive
	}
}

func (c *Config) normalizePlaylist() {
	if strings.TrimSpace(c.Playlist.OutputNameFormat) == "" {
		c.Playlist.OutputNameFormat = defaultOutputNameFormat
	}
}

func (c *Config) normalizeSuggest() {
	if c.Suggest.APIKey == "" {
		if value, ok := os.LookupEnv("MIXTAPE_SUGGEST_API_KEY"); ok {
			c.Suggest.APIKey = value
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Suggest.APIKey = value
		}
	}
	c.Suggest.BaseURL = strings.TrimSpace(c.Suggest.BaseURL)
	if c.Suggest.BaseURL == "" {
		c.Suggest.BaseURL = defaultSuggestBaseURL
	}
	if strings.TrimSpace(c.Suggest.Model) == "" {
		c.Suggest.Model = defaultSuggestModel
	}
	if c.Suggest.TimeoutSeconds <= 0 {
		c.Suggest.TimeoutSeconds = defaultSuggestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

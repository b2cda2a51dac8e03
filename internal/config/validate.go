package config

import (
	"errors"
	"fmt"

	"mixtape/internal/textnorm"
)

// Validate ensures the configuration is usable. Matching knobs are checked
// here so an out-of-range threshold or a broken keyword regex fails at
// startup rather than mid-run.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.MissingDir == "" {
		return errors.New("paths.missing_dir must be set")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if len(c.Library.Extensions) == 0 {
		return errors.New("library.extensions must list at least one extension")
	}
	if c.Library.CacheEnabled && c.Library.CachePath == "" {
		return errors.New("library.cache_path must be set when library.cache_enabled is true")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return fmt.Errorf("matching.threshold must be between 0 and 100, got %d", c.Matching.Threshold)
	}
	if c.Matching.LivePenaltyFactor < 0 || c.Matching.LivePenaltyFactor > 1 {
		return fmt.Errorf("matching.live_penalty_factor must be between 0.0 and 1.0, got %g", c.Matching.LivePenaltyFactor)
	}
	if _, err := textnorm.CompileStripKeywords(c.Matching.StripKeywords); err != nil {
		return fmt.Errorf("matching.strip_keywords: %w", err)
	}
	if _, err := textnorm.CompileLivePatterns(c.Matching.LiveAlbumKeywords); err != nil {
		return fmt.Errorf("matching.live_album_keywords: %w", err)
	}
	switch c.Matching.Interactive {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("matching.interactive must be auto, always, or never, got %q", c.Matching.Interactive)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

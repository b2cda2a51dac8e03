package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"mixtape/internal/config"
	"mixtape/internal/interact"
	"mixtape/internal/library"
	"mixtape/internal/match"
	"mixtape/internal/playlist"
	"mixtape/internal/textnorm"
	"mixtape/internal/usage"
)

// engine bundles the scanner and matcher built from one config.
type engine struct {
	cfg         *config.Config
	logger      *slog.Logger
	scanner     *library.Scanner
	cache       *library.Cache
	matcher     *match.Matcher
	interactive bool
}

// newEngine compiles the keyword sets, opens the scan cache when enabled,
// and constructs the scanner and matcher. forceRescan bypasses the cache
// for this run.
func newEngine(ctx context.Context, cmdCtx *commandContext, forceRescan bool) (*engine, error) {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return nil, err
	}

	strip, err := textnorm.CompileStripKeywords(cfg.Matching.StripKeywords)
	if err != nil {
		return nil, fmt.Errorf("compile strip keywords: %w", err)
	}
	livePatterns, err := textnorm.CompileLivePatterns(cfg.Matching.LiveAlbumKeywords)
	if err != nil {
		return nil, fmt.Errorf("compile live album keywords: %w", err)
	}

	var cache *library.Cache
	if cfg.Library.CacheEnabled && !forceRescan {
		fingerprint := library.KeywordFingerprint(
			cfg.Matching.StripKeywords, cfg.Matching.LiveAlbumKeywords)
		cache, err = library.OpenCache(ctx, cfg.Library.CachePath, fingerprint)
		if err != nil {
			logger.Warn("library cache unavailable, scanning without it", "error", err)
			cache = nil
		}
	}

	scanner, err := library.NewScanner(cfg.Library.Extensions, strip, livePatterns, cache, logger)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}

	interactive := resolveInteractive(cfg.Matching.Interactive)
	policy := match.Policy{
		Threshold:         cfg.Matching.Threshold,
		LivePenaltyFactor: cfg.Matching.LivePenaltyFactor,
		Interactive:       interactive,
	}
	matcher, err := match.NewMatcher(policy, strip, logger)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}

	return &engine{
		cfg:         cfg,
		logger:      logger,
		scanner:     scanner,
		cache:       cache,
		matcher:     matcher,
		interactive: interactive,
	}, nil
}

func (e *engine) close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
}

func (e *engine) scan(ctx context.Context) ([]library.Track, library.ScanStats, error) {
	return e.scanner.Scan(ctx, e.cfg.Paths.LibraryDir)
}

// resolveInteractive maps the config value to a decision: "always",
// "never", or "auto" (prompt only when stdin and stdout are terminals).
func resolveInteractive(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	}
}

// buildPlaylist matches every input entry against the library index and
// writes the playlist plus the missing-tracks report. sourceDesc names
// the input origin for the report header; basename feeds the output
// filename template.
func buildPlaylist(ctx context.Context, e *engine, out io.Writer, entries []playlist.Entry, sourceDesc, basename string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no input tracks to process")
	}

	tracks, stats, err := e.scan(ctx)
	if err != nil {
		return fmt.Errorf("scan library: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("library scan found no tracks under %s", e.cfg.Paths.LibraryDir)
	}
	fmt.Fprintf(out, "Library: %d tracks (%d cached)\n", stats.Tracks, stats.FromCache)
	fmt.Fprintf(out, "Matching %d input tracks\n\n", len(entries))

	var session *interact.Session
	if e.interactive {
		prompter := newTerminalPrompter(os.Stdin, out)
		session, err = interact.NewSession(prompter, tracks, nil, e.logger)
		if err != nil {
			return err
		}
	}

	usageStore, err := usage.Open(usagePath(e.cfg))
	if err != nil {
		e.logger.Warn("usage store unavailable", "error", err)
		usageStore = nil
	} else {
		defer usageStore.Close()
	}

	var items []playlist.Item
	var skipped []playlist.Skipped

	for i, entry := range entries {
		fmt.Fprintf(out, "[%02d/%02d] %s\n", i+1, len(entries), entry)
		query := match.Query{Artist: entry.Artist, Title: entry.Title}
		outcome := e.matcher.Resolve(query, tracks)

		var chosen *library.Track
		switch {
		case outcome.Decision == match.DecisionAutoMatch:
			track := outcome.Match
			chosen = &track
			fmt.Fprintf(out, "  matched: %s\n", filepath.Base(track.Path))
		case outcome.Decision == match.DecisionNoMatch:
			fmt.Fprintln(out, "  no match")
		case session != nil:
			chosen, err = session.Resolve(query, outcome)
			if err != nil {
				e.logger.Warn("interactive prompt failed, skipping entry",
					"entry", entry.String(), "error", err)
				chosen = nil
			}
			if chosen != nil {
				fmt.Fprintf(out, "  matched: %s\n", filepath.Base(chosen.Path))
			} else {
				fmt.Fprintln(out, "  skipped")
			}
		default:
			fmt.Fprintln(out, "  no match")
		}

		if chosen == nil {
			skipped = append(skipped, playlist.Skipped{
				Entry:  entry,
				Reason: skipReason(outcome.Decision),
			})
			continue
		}
		if usageStore != nil {
			if err := usageStore.Record(ctx, chosen.Path); err != nil {
				e.logger.Warn("record usage failed", "path", chosen.Path, "error", err)
			}
		}
		items = append(items, playlist.Item{
			Track:  *chosen,
			Artist: firstNonEmpty(chosen.Artist, entry.Artist),
			Title:  firstNonEmpty(chosen.Title, entry.Title),
		})
	}

	name := playlist.FormatOutputName(e.cfg.Playlist.OutputNameFormat, basename, time.Now())
	writer := &playlist.Writer{
		LibraryRoot:    e.cfg.Paths.LibraryDir,
		MPDPlaylistDir: e.cfg.Paths.MPDPlaylistDir,
		MissingDir:     e.cfg.Paths.MissingDir,
		Logger:         e.logger,
	}
	result, err := writer.Write(
		filepath.Join(e.cfg.Paths.OutputDir, name),
		items, skipped, sourceDesc, len(entries))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nGenerated playlist (%d/%d tracks): %s\n",
		len(items), len(entries), result.M3UPath)
	if result.MPDCopyPath != "" {
		fmt.Fprintf(out, "Copied playlist to MPD directory: %s\n", result.MPDCopyPath)
	}
	if result.MPDCopyErr != nil {
		fmt.Fprintf(out, "Warning: MPD copy failed: %v\n", result.MPDCopyErr)
	}
	if result.MissingPath != "" {
		fmt.Fprintf(out, "Missing tracks report: %s\n", result.MissingPath)
	}
	return nil
}

func skipReason(decision match.Decision) string {
	switch decision {
	case match.DecisionNoArtistMatch:
		return "Artist not found in library"
	case match.DecisionNoMatch:
		return "No suitable match found"
	default:
		return "Skipped by user or no choice made"
	}
}

// usagePath places the usage database next to the scan cache.
func usagePath(cfg *config.Config) string {
	if cfg.Library.CachePath != "" {
		return filepath.Join(filepath.Dir(cfg.Library.CachePath), "usage.db")
	}
	return filepath.Join(cfg.Paths.LogDir, "usage.db")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

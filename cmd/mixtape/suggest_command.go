package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"mixtape/internal/suggest"
)

// aiBasenameMaxLength caps how much of the prompt ends up in the
// playlist filename.
const aiBasenameMaxLength = 50

var nonWordRun = regexp.MustCompile(`\W+`)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var count int
	var forceRescan bool

	cmd := &cobra.Command{
		Use:   "suggest <prompt>",
		Short: "Generate a playlist from an AI prompt and match it against the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client := suggest.NewClient(suggest.Config{
				APIKey:         cfg.Suggest.APIKey,
				BaseURL:        cfg.Suggest.BaseURL,
				Model:          cfg.Suggest.Model,
				TimeoutSeconds: cfg.Suggest.TimeoutSeconds,
			})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Requesting %d tracks from %s\n", count, cfg.Suggest.Model)
			entries, err := client.GeneratePlaylist(cmd.Context(), prompt, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Model suggested %d tracks\n", len(entries))

			if cfg.Suggest.SaveSuggestions && cfg.Paths.SuggestionsDir != "" {
				path, err := suggest.SaveSuggestion(cfg.Paths.SuggestionsDir, prompt, entries)
				if err != nil {
					logger.Warn("saving suggestion failed", "error", err)
				} else {
					fmt.Fprintf(out, "Saved suggestion to %s\n", path)
				}
			}

			engine, err := newEngine(cmd.Context(), ctx, forceRescan)
			if err != nil {
				return err
			}
			defer engine.close()

			return buildPlaylist(cmd.Context(), engine, out,
				entries, "AI prompt: "+prompt, aiBasename(prompt))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "How many tracks to request")
	cmd.Flags().BoolVar(&forceRescan, "force-rescan", false, "Ignore the library cache and re-read every file")
	return cmd
}

// aiBasename sanitizes the prompt into a filename-friendly stem.
func aiBasename(prompt string) string {
	base := strings.Trim(nonWordRun.ReplaceAllString(strings.ToLower(prompt), "_"), "_")
	if len(base) > aiBasenameMaxLength {
		base = strings.Trim(base[:aiBasenameMaxLength], "_")
	}
	if base == "" {
		return "ai_playlist"
	}
	return base
}

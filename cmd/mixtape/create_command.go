package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mixtape/internal/config"
	"mixtape/internal/playlist"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var forceRescan bool

	cmd := &cobra.Command{
		Use:   "create <input-file>",
		Short: "Build a playlist from an \"Artist - Title\" list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			entries, err := playlist.ReadInputFile(inputPath, logger)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no usable entries in %s", inputPath)
			}

			engine, err := newEngine(cmd.Context(), ctx, forceRescan)
			if err != nil {
				return err
			}
			defer engine.close()

			basename := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			return buildPlaylist(cmd.Context(), engine, cmd.OutOrStdout(),
				entries, inputPath, basename)
		},
	}

	cmd.Flags().BoolVar(&forceRescan, "force-rescan", false, "Ignore the library cache and re-read every file")
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var forceRescan bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and refresh the track cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd.Context(), ctx, forceRescan)
			if err != nil {
				return err
			}
			defer engine.close()

			tracks, stats, err := engine.scan(cmd.Context())
			if err != nil {
				return err
			}

			liveCount := 0
			missingTags := 0
			for _, track := range tracks {
				if track.IsLive {
					liveCount++
				}
				if track.Artist == "" && track.Title == "" {
					missingTags++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %s\n", engine.cfg.Paths.LibraryDir)
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Count"},
				[][]string{
					{"Tracks", strconv.Itoa(stats.Tracks)},
					{"From cache", strconv.Itoa(stats.FromCache)},
					{"Live recordings", strconv.Itoa(liveCount)},
					{"Missing tags", strconv.Itoa(missingTags)},
					{"Tag read errors", strconv.Itoa(stats.TagErrors)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceRescan, "force-rescan", false, "Ignore the library cache and re-read every file")
	return cmd
}

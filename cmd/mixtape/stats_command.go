package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mixtape/internal/usage"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most-used tracks across generated playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := usage.Open(usagePath(cfg))
			if err != nil {
				return fmt.Errorf("open usage store: %w", err)
			}
			defer store.Close()

			stats, err := store.Top(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(out, "No usage recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(stats))
			for i, stat := range stats {
				lastUsed := ""
				if !stat.LastUsed.IsZero() {
					lastUsed = stat.LastUsed.Format("2006-01-02")
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					stat.Path,
					strconv.Itoa(stat.TimesUsed),
					lastUsed,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Track", "Used", "Last used"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "How many tracks to show")
	return cmd
}

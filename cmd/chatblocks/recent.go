package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riverfjs/chatblocks-go/internal/activity"
)

func newRecentCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := activity.Open(a.cfg.Storage.DatabasePath, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.LoadRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No recent activity.")
				return nil
			}
			now := time.Now()
			for _, r := range records {
				fmt.Fprintf(out, "%s %s · %s", r.Icon, r.Title, activity.RelativeTime(now, r.Timestamp))
				if r.ResultPreview != "" {
					fmt.Fprintf(out, " · %s", r.ResultPreview)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", activity.RecentCount, "Number of entries to show")
	return cmd
}

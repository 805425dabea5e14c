package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/history"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/rewardjar"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and rewards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events := st.EventRepo()
		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		counts, total, err := events.RewardCounts(ctx)
		if err != nil {
			return fmt.Errorf("query rewards: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}
		for _, rec := range sessions {
			fmt.Fprintln(out, history.Line(rec))
		}

		fmt.Fprintf(out, "\nRewards unlocked: %d\n", total)
		for _, t := range rewardjar.SortCounts(counts) {
			fmt.Fprintf(out, "  %3d × %s\n", t.Count, t.Text)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Show at most this many sessions")
}

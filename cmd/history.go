package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and mission runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		events := e.store.EventRepo()
		out := cmd.OutOrStdout()

		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		heading(out, "Sessions", 64)
		if len(sessions) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No sessions yet."))
		}
		for _, s := range sessions {
			acc := 0.0
			if s.QuestionsServed > 0 {
				acc = float64(s.CorrectAnswers) / float64(s.QuestionsServed)
			}
			fmt.Fprintf(out, "%-19s  %-10s  %2d/%-2d  %5s  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.Kind, s.CorrectAnswers, s.QuestionsServed, percent(acc),
				time.Duration(s.DurationSecs)*time.Second)
		}
		fmt.Fprintln(out)

		runs, err := events.QueryMissionEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query missions: %w", err)
		}
		heading(out, "Missions", 64)
		if len(runs) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No missions run yet."))
		}
		for _, r := range runs {
			title := r.MissionID
			if m, ok := e.catalog.Mission(r.MissionID); ok {
				title = m.Title
			}
			fmt.Fprintf(out, "%-19s  %-28s  %3d  %-2s  +%d intel\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(title, 28), r.Score, r.Grade, r.Intel)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries per section")
}

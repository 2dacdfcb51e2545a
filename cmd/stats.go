package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rank, intel and mastery by domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		st := e.progress.Stats()

		heading(out, "Agent File", 56)
		fmt.Fprintf(out, "%-20s %s\n", "Rank", st.Rank)
		if st.NextRank != st.Rank {
			fmt.Fprintf(out, "%-20s %s to %s\n", "Promotion", percent(st.RankProgress), st.NextRank)
		}
		fmt.Fprintf(out, "%-20s %d\n", "Intel", st.TotalIntel)
		fmt.Fprintf(out, "%-20s %d\n", "Streak", st.Streak)
		fmt.Fprintf(out, "%-20s %d (%s correct)\n", "Questions answered", st.Answered, percent(st.Accuracy()))
		fmt.Fprintf(out, "%-20s %d\n", "Missions completed", st.MissionsCompleted)
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%-20s %d\n", "Mastered", st.Mastered)
		fmt.Fprintf(out, "%-20s %d\n", "Learning", st.Learning)
		fmt.Fprintf(out, "%-20s %d\n", "Unseen", st.Unseen)
		fmt.Fprintf(out, "%-20s %s\n", "Due now", warnStyle.Render(fmt.Sprint(st.Due)))
		if st.Flagged > 0 {
			fmt.Fprintf(out, "%-20s %s\n", "Misconceptions", badStyle.Render(fmt.Sprint(st.Flagged)))
		}
		fmt.Fprintln(out)

		heading(out, "Domains", 56)
		fmt.Fprintf(out, "%-24s %8s %8s %8s %6s\n", "Domain", "Mastered", "Learning", "Unseen", "Avg")
		for _, h := range e.progress.DomainHeat() {
			fmt.Fprintf(out, "%-24s %8d %8d %8d %5.0f%%\n",
				truncate(h.Domain, 24), h.Mastered, h.Learning, h.Unseen, h.Mastery)
		}
		return nil
	},
}

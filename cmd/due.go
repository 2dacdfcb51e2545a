package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List objectives due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		now := time.Now()
		objs := e.progress.DueObjectives()
		if all {
			objs = e.progress.Objectives()
		}
		if len(objs) == 0 {
			fmt.Fprintln(out, "Nothing is due.")
			return nil
		}

		fmt.Fprintf(out, "%-10s  %-36s  %-9s  %7s  %-11s\n", "ID", "Objective", "Status", "Mastery", "Next")
		rule(out, 82)
		for _, o := range objs {
			status := o.Status.DisplayName()
			if o.Misconception {
				status = badStyle.Render(fmt.Sprintf("%-9s", "flagged"))
			} else if o.Status == mastery.StatusMastered {
				status = goodStyle.Render(fmt.Sprintf("%-9s", status))
			} else {
				status = fmt.Sprintf("%-9s", status)
			}
			fmt.Fprintf(out, "%-10s  %-36s  %s  %6.0f%%  %-11s\n",
				truncate(o.ID, 10), truncate(o.Title, 36), status, o.Mastery, formatDue(o.NextDue, now))
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().BoolP("all", "a", false, "List every objective, not only due ones")
}

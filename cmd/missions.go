package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List missions with their lock state and last score",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-32s  %-18s  %s\n", "ID", "Title", "Type", "Status")
		rule(out, 80)
		for _, m := range e.catalog.Missions() {
			status := dimStyle.Render("locked")
			if e.progress.Unlocked(m.ID) {
				status = warnStyle.Render("new")
				if r, ok := e.progress.MissionResult(m.ID); ok && r.Completed {
					status = goodStyle.Render(fmt.Sprintf("last %d", r.Score))
				}
			}
			fmt.Fprintf(out, "%-16s  %-32s  %-18s  %s\n",
				truncate(m.ID, 16), truncate(m.Title, 32), m.Type.DisplayName(), status)
		}
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect content packs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Load and validate a content pack (the embedded one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}
		cat, err := loadCatalog(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		m := cat.Manifest()
		fmt.Fprintln(out, goodStyle.Render("✓ content pack is valid"))
		fmt.Fprintf(out, "%-12s %s\n", "Version", m.Version)
		fmt.Fprintf(out, "%-12s %d\n", "Domains", len(cat.Domains()))
		fmt.Fprintf(out, "%-12s %d\n", "Objectives", len(cat.Objectives()))
		fmt.Fprintf(out, "%-12s %d\n", "Questions", len(cat.Questions()))
		fmt.Fprintf(out, "%-12s %d\n", "Missions", len(cat.Missions()))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}

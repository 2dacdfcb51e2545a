package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog("")
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "spyacademy", version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "spyacademy %s (content %s)\n", version, cat.Version())
		return nil
	},
}

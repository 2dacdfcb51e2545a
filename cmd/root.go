package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "spyacademy",
	Short: "Cybersecurity training academy for the terminal",
	Long:  "Spy Academy trains defensive security skills with adaptive review drills, placement and hands-on missions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{interactive: true, withLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()
		return app.Run(cmd.Context(), e.deps(cmd.Context()))
	},
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx as every command's context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPYACADEMY_DB env var)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

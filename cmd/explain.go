package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id> [mode]",
	Short: "Print an alternative explanation for a question",
	Long:  "Explain prints the authored explanation for a mode, or generates one when an LLM provider is configured. Without a mode it lists the modes available.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		q, ok := e.catalog.Question(args[0])
		if !ok {
			return fmt.Errorf("unknown question %q", args[0])
		}

		out := cmd.OutOrStdout()
		modes := e.explain.Modes(q)
		if len(args) == 1 {
			if len(modes) == 0 {
				fmt.Fprintln(out, "No explanations available for this question.")
				return nil
			}
			for _, m := range modes {
				fmt.Fprintln(out, m)
			}
			return nil
		}

		mode := catalog.ExplanationMode(args[1])
		if !slices.Contains(catalog.AllExplanationModes(), mode) {
			return fmt.Errorf("unknown mode %q", args[1])
		}
		exp, err := e.explain.Explain(cmd.Context(), q, mode)
		if err != nil {
			return fmt.Errorf("explain %s: %w", q.ID, err)
		}

		heading(out, fmt.Sprintf("%s · %s", q.ID, exp.Mode), 60)
		fmt.Fprintln(out, exp.Text)
		if exp.Generated {
			fmt.Fprintln(out, dimStyle.Render("(generated)"))
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/llm"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(out, 100)
		for _, ev := range events {
			if purpose != "" && ev.Purpose != purpose {
				continue
			}
			ok := goodStyle.Render("✓")
			if !ev.Success {
				ok = badStyle.Render("✗")
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(ev.Purpose, 12),
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
			if !ev.Success && ev.ErrorMessage != "" {
				fmt.Fprintln(out, dimStyle.Render("        "+truncate(ev.ErrorMessage, 90)))
			}
		}
		return nil
	},
}

type modelUsage struct {
	model        string
	calls        int
	inputTokens  int
	outputTokens int
}

// usageByModel totals tokens per model, most calls first.
func usageByModel(events []store.LLMRequestEventRecord) []modelUsage {
	idx := make(map[string]int)
	var usage []modelUsage
	for _, ev := range events {
		i, ok := idx[ev.Model]
		if !ok {
			i = len(usage)
			idx[ev.Model] = i
			usage = append(usage, modelUsage{model: ev.Model})
		}
		usage[i].calls++
		usage[i].inputTokens += ev.InputTokens
		usage[i].outputTokens += ev.OutputTokens
	}
	sort.SliceStable(usage, func(a, b int) bool { return usage[a].calls > usage[b].calls })
	return usage
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		heading(out, "Estimated Cost (USD)", 72)
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		rule(out, 72)

		var totalCost float64
		var unknown []string
		for _, mu := range usageByModel(events) {
			cost := llm.LookupCost(mu.model)
			if cost == nil {
				unknown = append(unknown, mu.model)
				fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
					truncate(mu.model, 32), mu.calls, mu.inputTokens, mu.outputTokens, "?")
				continue
			}
			c := cost.Cost(mu.inputTokens, mu.outputTokens)
			totalCost += c
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.model, 32), mu.calls, mu.inputTokens, mu.outputTokens, formatCost(c))
		}
		rule(out, 72)
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. explain)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	dimStyle     = lipgloss.NewStyle().Foreground(theme.TextDim)
	goodStyle    = lipgloss.NewStyle().Foreground(theme.Success)
	badStyle     = lipgloss.NewStyle().Foreground(theme.Error)
	warnStyle    = lipgloss.NewStyle().Foreground(theme.Warning)
)

// heading prints a title and a rule of the given width.
func heading(w io.Writer, title string, width int) {
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("─", width)))
}

func rule(w io.Writer, width int) {
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("─", width)))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// formatDue describes a due time relative to now.
func formatDue(due, now time.Time) string {
	if due.IsZero() {
		return "unscheduled"
	}
	d := due.Sub(now)
	if d <= 0 {
		return "now"
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("in %dh", int(d.Hours()+0.5))
	}
	return fmt.Sprintf("in %dd", int(d.Hours()/24+0.5))
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

package mission

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/scoring"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

const thresholdStep = 5

type detector struct {
	t         catalog.DetectorTasks
	rows      []scoring.DetectorRow
	threshold int
}

func newDetector(t catalog.DetectorTasks) (*detector, error) {
	rows, err := scoring.ParseDetectorCSV(t.DatasetCSV)
	if err != nil {
		return nil, err
	}
	th := t.DefaultThreshold
	if th == 0 {
		th = catalog.DefaultDetectorThreshold
	}
	return &detector{t: t, rows: rows, threshold: th}, nil
}

func (d *detector) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "right", "k", "l", "+":
		d.threshold += thresholdStep
	case "down", "left", "j", "h", "-":
		d.threshold = max(d.threshold-thresholdStep, 0)
	case "enter", "ctrl+s":
		return nil, true
	}
	return nil, false
}

func (d *detector) Attempt() missions.Attempt {
	return missions.Attempt{Threshold: d.threshold}
}

func (d *detector) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: fmt.Sprintf("Threshold ±%d", thresholdStep)},
		{Key: "Enter", Description: "Deploy"},
	}
}

func (d *detector) View(width int, readable bool) string {
	var b strings.Builder

	flagged := scoring.FlagAccounts(d.rows, d.t.ThresholdField, d.threshold)
	isFlagged := make(map[string]bool, len(flagged))
	for _, u := range flagged {
		isFlagged[u] = true
	}

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Flag when %s > %d and likes < 2", d.t.ThresholdField, d.threshold)))
	b.WriteString("\n\n")

	// Stable column order: user, threshold field, the rest alphabetical.
	var cols []string
	if len(d.rows) > 0 {
		for k := range d.rows[0].Fields {
			if k != d.t.ThresholdField {
				cols = append(cols, k)
			}
		}
		sort.Strings(cols)
		cols = append([]string{d.t.ThresholdField}, cols...)
	}

	head := fmt.Sprintf("  %-16s", "user")
	for _, c := range cols {
		head += fmt.Sprintf(" %10s", c)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(head))
	b.WriteString("\n")
	for _, r := range d.rows {
		line := fmt.Sprintf("%-16s", r.User)
		for _, c := range cols {
			line += fmt.Sprintf(" %10.0f", r.Fields[c])
		}
		if isFlagged[r.User] {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚑ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%d flagged (need %d)", len(flagged), scoring.DetectorMinFlagged)
	style := lipgloss.NewStyle().Foreground(theme.Warning)
	if len(flagged) >= scoring.DetectorMinFlagged {
		style = lipgloss.NewStyle().Foreground(theme.Success)
	}
	b.WriteString(style.Render(status))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

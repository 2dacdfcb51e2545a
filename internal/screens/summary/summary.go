package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/placement"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/mission"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	d       *deps.Deps
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(d *deps.Deps, summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{d: d, summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary != nil && s.summary.Kind == session.KindPlacement {
		return "Placement Complete"
	}
	return "Session Summary"
}

func (s *SummaryScreen) recommended() string {
	if s.summary == nil || s.summary.Placement == nil || s.summary.Placement.RecommendedMission == nil {
		return ""
	}
	return s.summary.Placement.RecommendedMission.ID
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if s.recommended() != "" {
		hints = append(hints, layout.KeyHint{Key: "M", Description: "Start recommended mission"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "m", "M":
			if id := s.recommended(); id != "" {
				next := mission.New(s.d, id)
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	title := "Session complete!"
	if sum.Kind == session.KindPlacement {
		title = "Placement complete!"
	}
	b.WriteString(theme.Line(width, theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Line(width, theme.TextDim).Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d/%d     Accuracy: %.0f%%     Avg confidence: %.0f%%",
		sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100, sum.AverageConfidence)
	b.WriteString(theme.Line(width, theme.Text).Render(statsLine))
	b.WriteString("\n")

	if sum.HighConfidenceErrors > 0 {
		b.WriteString(theme.Line(width, theme.Warning).Render(
			fmt.Sprintf("High-confidence errors: %d (queued for review within a day)", sum.HighConfidenceErrors)))
		b.WriteString("\n")
	}
	if sum.IntelGained > 0 {
		b.WriteString(theme.Line(width, theme.Accent).Render(fmt.Sprintf("◆ +%d intel", sum.IntelGained)))
		b.WriteString("\n")
	}

	if p := sum.Placement; p != nil {
		b.WriteString("\n")
		b.WriteString(renderPlacement(p, width))
	}

	return b.String()
}

// renderPlacement lists per-domain results, weakest first, with the
// recommended focus and mission.
func renderPlacement(p *session.PlacementResult, width int) string {
	var b strings.Builder
	cw := min(width-8, 60)

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Domain performance")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, prof := range placement.RankWeakest(p.Profiles) {
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("%-16s %d/%d conf %3.0f%%", truncate(prof.Domain, 16), prof.Correct, prof.Total, prof.Confidence),
			Percent: prof.Mastery / 100,
			Width:   cw,
			Fill:    components.MasteryColor(prof.Mastery),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if p.RecommendedDomain != "" {
		b.WriteString("\n")
		b.WriteString(theme.Line(width, theme.Highlight).Bold(true).
			Render("Suggested focus first: " + p.RecommendedDomain))
		b.WriteString("\n")
	}
	if m := p.RecommendedMission; m != nil {
		b.WriteString(theme.Line(width, theme.Secondary).
			Render(fmt.Sprintf("Recommended mission: %s (%s)", m.Title, m.Type.DisplayName())))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package mission

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

type phishing struct {
	t       catalog.PhishingTasks
	cursor  int
	answers []string
}

func newPhishing(t catalog.PhishingTasks) *phishing {
	return &phishing{t: t, answers: make([]string, len(t.Questions))}
}

func (p *phishing) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		p.cursor = max(p.cursor-1, 0)
	case "down", "j":
		p.cursor = min(p.cursor+1, len(p.answers)-1)
	case "y":
		p.answer("yes")
	case "n":
		p.answer("no")
	case "enter", "ctrl+s":
		return nil, true
	}
	return nil, false
}

func (p *phishing) answer(a string) {
	if len(p.answers) == 0 {
		return
	}
	p.answers[p.cursor] = a
	p.cursor = min(p.cursor+1, len(p.answers)-1)
}

func (p *phishing) Attempt() missions.Attempt {
	return missions.Attempt{Answers: append([]string(nil), p.answers...)}
}

func (p *phishing) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y/N", Description: "Answer"},
		{Key: "↑↓", Description: "Question"},
		{Key: "Enter", Description: "Submit"},
	}
}

func (p *phishing) View(width int, readable bool) string {
	var b strings.Builder
	cw := min(width-8, 100)

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Render(p.t.Headers))
	b.WriteString("\n\n")

	for i, q := range p.t.Questions {
		ans := "—"
		if p.answers[i] != "" {
			ans = p.answers[i]
		}
		line := fmt.Sprintf("%d. %s  [%s]", i+1, q.Prompt, ans)
		if i == p.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

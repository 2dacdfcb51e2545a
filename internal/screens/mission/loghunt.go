package mission

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/scoring"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// Log-hunt fields, in tab order.
const (
	fieldCount = iota
	fieldMitigation
	fieldReport
	fieldCountAll
)

type logHunt struct {
	t          catalog.LogHuntTasks
	focus      int
	count      components.TextInput
	mitigation int // -1 until chosen
	cursor     int
	report     textarea.Model
}

func newLogHunt(t catalog.LogHuntTasks) *logHunt {
	ta := textarea.New()
	ta.Placeholder = "Incident note: what happened, what you changed, what to watch for..."
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.ShowLineNumbers = false
	return &logHunt{
		t:          t,
		count:      components.NewTextInput("0", true, 4),
		mitigation: -1,
		report:     ta,
	}
}

func (l *logHunt) setFocus(f int) tea.Cmd {
	l.focus = f
	l.count.Blur()
	l.report.Blur()
	switch f {
	case fieldCount:
		return l.count.Focus()
	case fieldReport:
		return l.report.Focus()
	}
	return nil
}

func (l *logHunt) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab":
		return l.setFocus((l.focus + 1) % fieldCountAll), false
	case "shift+tab":
		return l.setFocus((l.focus + fieldCountAll - 1) % fieldCountAll), false
	case "ctrl+s":
		return nil, true
	}

	var cmd tea.Cmd
	switch l.focus {
	case fieldCount:
		if msg.String() == "enter" {
			return l.setFocus(fieldMitigation), false
		}
		l.count, cmd = l.count.Update(msg)
	case fieldMitigation:
		switch msg.String() {
		case "up", "k":
			l.cursor = max(l.cursor-1, 0)
		case "down", "j":
			l.cursor = min(l.cursor+1, len(l.t.MitigationOptions)-1)
		case "enter", "space", " ":
			l.mitigation = l.cursor
			return l.setFocus(fieldReport), false
		}
	case fieldReport:
		l.report, cmd = l.report.Update(msg)
	}
	return cmd, false
}

func (l *logHunt) Attempt() missions.Attempt {
	n, err := l.count.NumericValue()
	if err != nil {
		n = -1
	}
	return missions.Attempt{LogHunt: scoring.LogHuntAttempt{
		Count:      n,
		Mitigation: l.mitigation,
		Report:     l.report.Value(),
	}}
}

func (l *logHunt) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Submit"},
	}
}

func (l *logHunt) View(width int, readable bool) string {
	var b strings.Builder
	cw := min(width-8, 100)

	logBox := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Render(l.t.LogText)
	b.WriteString(logBox)
	b.WriteString("\n\n")

	b.WriteString(label("1. "+l.t.Question, l.focus == fieldCount))
	b.WriteString("\n   ")
	b.WriteString(l.count.View())
	b.WriteString("\n\n")

	b.WriteString(label("2. Choose a mitigation", l.focus == fieldMitigation))
	b.WriteString("\n")
	for i, opt := range l.t.MitigationOptions {
		mark := "( )"
		if i == l.mitigation {
			mark = "(•)"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if l.focus == fieldMitigation && i == l.cursor {
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("   %s %s", mark, opt)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	words := scoring.CountWords(l.report.Value())
	wc := lipgloss.NewStyle().Foreground(theme.TextDim)
	if words >= l.t.MinWords && words <= l.t.MaxWords {
		wc = wc.Foreground(theme.Success)
	}
	b.WriteString(label(fmt.Sprintf("3. Incident note (%d–%d words)", l.t.MinWords, l.t.MaxWords), l.focus == fieldReport))
	b.WriteString("  ")
	b.WriteString(wc.Render(fmt.Sprintf("%d words", words)))
	b.WriteString("\n")
	b.WriteString(l.report.View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func label(text string, focused bool) string {
	if focused {
		return theme.Selected.Render("▸ " + text)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("  " + text)
}

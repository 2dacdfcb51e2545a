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

type dialogue struct {
	t       catalog.DialogueTasks
	step    int
	choices []int
	// note of the last pick, shown until the learner moves on
	note    string
	showing bool
}

func newDialogue(t catalog.DialogueTasks) *dialogue {
	return &dialogue{t: t}
}

func (d *dialogue) done() bool { return d.step >= len(d.t.Steps) }

func (d *dialogue) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if d.showing {
		if key == "enter" || key == "space" || key == " " {
			d.showing = false
			d.note = ""
			d.step++
			return nil, d.done()
		}
		return nil, false
	}
	if d.done() {
		return nil, key == "enter"
	}
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil, false
	}
	i := int(key[0] - '1')
	opts := d.t.Steps[d.step].Options
	if i >= len(opts) {
		return nil, false
	}
	d.choices = append(d.choices, i)
	d.note = opts[i].Note
	d.showing = true
	return nil, false
}

func (d *dialogue) Attempt() missions.Attempt {
	return missions.Attempt{Choices: append([]int(nil), d.choices...)}
}

func (d *dialogue) KeyHints() []layout.KeyHint {
	if d.showing {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	return []layout.KeyHint{{Key: "1-9", Description: "Reply"}}
}

func (d *dialogue) View(width int, readable bool) string {
	var b strings.Builder
	cw := min(width-8, 80)

	if d.done() {
		b.WriteString(theme.Subtitle.Render("Conversation over. Press Enter to file your report."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	s := d.t.Steps[d.step]
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Exchange %d of %d", d.step+1, len(d.t.Steps))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.Speaker + ":"))
	b.WriteString("\n")
	b.WriteString(layout.Readable(s.Text, cw, readable))
	b.WriteString("\n\n")

	for i, o := range s.Options {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if d.showing && d.choices[len(d.choices)-1] == i {
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("  %d. %s", i+1, o.Label)))
		b.WriteString("\n")
	}

	if d.showing && d.note != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Signal).Italic(true).Width(cw).Render(d.note))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

package academy

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/screens/quiz"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// DetailScreen shows one objective with its lessons.
type DetailScreen struct {
	d         *deps.Deps
	id        string
	objective catalog.Objective
	lessons   []catalog.Lesson
	lesson    int
	questions int
	notice    string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)
var _ screen.Resumer = (*DetailScreen)(nil)

func newDetail(d *deps.Deps, objectiveID string) *DetailScreen {
	cat := d.Progress.Catalog()
	s := &DetailScreen{
		d:         d,
		id:        objectiveID,
		lessons:   cat.LessonsForObjective(objectiveID),
		questions: len(cat.QuestionsForObjective(objectiveID)),
	}
	s.objective, _ = d.Progress.Objective(objectiveID)
	return s
}

func (s *DetailScreen) Init() tea.Cmd  { return nil }
func (s *DetailScreen) Title() string  { return s.objective.Title }

func (s *DetailScreen) Resume() tea.Cmd {
	s.objective, _ = s.d.Progress.Objective(s.id)
	return nil
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "P", Description: "Practice"}}
	if len(s.lessons) > 1 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Lesson"})
	}
	if s.objective.Misconception {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Clear flag"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	s.notice = ""
	switch kmsg.String() {
	case "up", "k":
		s.lesson = max(s.lesson-1, 0)
	case "down", "j":
		s.lesson = min(s.lesson+1, max(len(s.lessons)-1, 0))
	case "c":
		if s.d.Progress.ClearMisconception(s.id) {
			s.objective, _ = s.d.Progress.Objective(s.id)
			s.notice = "Misconception flag cleared."
		}
	case "p", "enter":
		plan, err := session.BuildPractice(s.d.Progress.Catalog(), s.id, s.d.Rand)
		if err != nil {
			s.notice = err.Error()
			return s, nil
		}
		q := quiz.New(s.d, plan, "Practice")
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}
	return s, nil
}

func (s *DetailScreen) View(width, height int) string {
	o := s.objective
	cw := min(width-8, 72)
	readable := s.d.Readable()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("  " + o.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s · %s · %d questions", o.Domain, o.Status.DisplayName(), s.questions)))
	b.WriteString("\n\n  ")

	bar := components.ProgressBar{
		Label:       "Mastery",
		Percent:     o.Mastery / 100,
		ShowPercent: true,
		Width:       40,
		Fill:        components.MasteryColor(o.Mastery),
	}
	b.WriteString(bar.View())
	b.WriteString("\n  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(dueText(o, time.Now())))

	if o.Misconception {
		b.WriteString("\n\n  ")
		b.WriteString(components.Badge("MISCONCEPTION", theme.Warning))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).
			Render("  You answered confidently and got it wrong. Revisit the lesson."))
	}

	if len(s.lessons) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("  Lessons"))
		b.WriteString("\n")
		for i, l := range s.lessons {
			style := lipgloss.NewStyle().Foreground(theme.Text)
			prefix := "    "
			if i == s.lesson {
				style = theme.Selected
				prefix = "  ▸ "
			}
			b.WriteString(style.Render(prefix + l.Title))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(components.Card(layout.Readable(s.lessons[s.lesson].Body, cw-6, readable), cw))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + s.notice))
	}
	return b.String()
}

func dueText(o catalog.Objective, now time.Time) string {
	switch {
	case o.NextDue.IsZero():
		return "Not scheduled yet"
	case o.IsDue(now):
		return "Due for review now"
	default:
		return "Next review " + o.NextDue.Local().Format("Mon Jan 2 15:04")
	}
}

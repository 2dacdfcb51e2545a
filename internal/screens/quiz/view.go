package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return theme.Line(width, theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	case s.state == nil:
		return theme.Line(width, theme.TextDim).Render("\n\n\n  Preparing your briefing...")
	case s.quitConfirm:
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	body := min(width-8, 72)
	readable := s.d.Readable()

	stem := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(layout.Readable(s.question.Stem, body, readable))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stem))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	switch s.step {
	case stepConfidence:
		b.WriteString(s.renderConfidence(width))
	case stepFeedback:
		b.WriteString(s.renderFeedback(width, body, readable))
	}
	return b.String()
}

// renderInfoLine shows the session kind, question counter and score.
func (s *QuizScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", kindLabel(s.plan.Kind), s.question.Domain))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			s.state.Index+1,
			s.plan.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.state.Correct(),
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *QuizScreen) renderConfidence(width int) string {
	var b strings.Builder
	b.WriteString(theme.Line(width, theme.Text).Render("How confident are you?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.conf.View()))
	b.WriteString("\n")
	guess := "[ ] I'm mostly guessing"
	if s.guessing {
		guess = fmt.Sprintf("[x] I'm mostly guessing (recorded as at most %d%%)", GuessingCap)
	}
	b.WriteString(theme.Line(width, theme.TextDim).Render(guess))
	return b.String()
}

func (s *QuizScreen) renderFeedback(width, body int, readable bool) string {
	a := s.last
	if a == nil {
		return ""
	}
	var b strings.Builder

	if a.Correct {
		b.WriteString(theme.Line(width, theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(theme.Line(width, theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Line(width, theme.TextDim).
			Render("Correct answer: " + s.question.CorrectOption()))
	}
	b.WriteString("\n\n")

	if out := a.Outcome; out != nil {
		b.WriteString(renderOutcome(width, out.IntelGained, out.MasteryBefore, out.MasteryAfter))
		if out.Diagnosis != nil {
			b.WriteString(theme.Line(width, theme.Warning).
				Render("Diagnosis: " + out.Diagnosis.Category.DisplayName()))
			b.WriteString("\n")
		}
		if out.HighConfidenceWrong {
			b.WriteString(theme.Line(width, theme.Warning).Bold(true).
				Render("Confident but wrong: flagged as a misconception to revisit soon."))
			b.WriteString("\n")
		}
		if t := out.Transition; t != nil && t.To == mastery.StatusMastered {
			b.WriteString(theme.Line(width, theme.Highlight).Bold(true).Render("Objective mastered!"))
			b.WriteString("\n")
		}
		if rc := out.RankChange; rc != nil {
			b.WriteString(theme.Line(width, theme.Highlight).Bold(true).
				Render(fmt.Sprintf("Promoted: %s → %s", rc.From, rc.To)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Rationale, or the selected alternative explanation.
	label := "Rationale"
	text := s.question.Rationale
	if s.modeIdx >= 0 {
		label = fmt.Sprintf("Explained differently (%s)", s.modes[s.modeIdx])
		switch {
		case s.expLoading:
			text = "Working on it..."
			if !s.d.ReduceMotion() {
				text = "Decrypting a new explanation..."
			}
		case s.expErr != "":
			text = "No explanation available: " + s.expErr
		default:
			text = s.expText
		}
	}
	card := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(layout.Readable(text, body-6, readable))
	if s.modeIdx >= 0 {
		card += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render(layout.Readable("Original rationale: "+s.question.Rationale, body-6, false))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(card, body)))
	return b.String()
}

func renderOutcome(width, intel int, before, after float64) string {
	delta := after - before
	sign := "+"
	color := theme.Success
	if delta < 0 {
		sign = ""
		color = theme.Error
	}
	line := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("◆ +%d intel", intel)) +
		"   " +
		lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("mastery %.0f → %.0f (%s%.0f)", before, after, sign, delta))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n"
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Line(width, theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(theme.Line(width, theme.TextDim).Render("Answers so far are kept."))
	b.WriteString("\n\n")
	b.WriteString(theme.Line(width, theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(theme.Line(width, theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func kindLabel(k session.Kind) string {
	switch k {
	case session.KindPlacement:
		return "Placement"
	case session.KindDrill:
		return "Review drill"
	default:
		return "Practice"
	}
}

package mission

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

func (s *MissionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return theme.Line(width, theme.Error).
			Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", s.errMsg))
	case !s.loaded:
		return theme.Line(width, theme.TextDim).Render("\n\n\n  Decrypting mission file...")
	}

	readable := s.d != nil && s.d.Readable()
	switch s.phase {
	case phaseBriefing:
		return s.renderBriefing(width, readable)
	case phaseTask:
		return "\n" + s.task.View(width, readable)
	default:
		return s.renderResult(width)
	}
}

func (s *MissionScreen) renderBriefing(width int, readable bool) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Badge(s.mission.Type.DisplayName(), theme.Accent))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(s.mission.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(layout.Readable(s.mission.Lore, cw-4, readable)))

	if len(s.mission.Objectives) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Trains"))
		for _, id := range s.mission.Objectives {
			title := id
			if s.d != nil {
				if o, ok := s.d.Progress.Objective(id); ok {
					title = o.Title
				}
			}
			b.WriteString("\n  · " + title)
		}
	}

	card := components.Card(b.String(), cw)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *MissionScreen) renderResult(width int) string {
	r := s.result
	cw := components.ContentWidth(width)
	var b strings.Builder

	verdict := components.Badge("MISSION FAILED", theme.Error)
	if r.Passed {
		verdict = components.Badge("MISSION PASSED", theme.Success)
	}
	b.WriteString(verdict)
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("Score %d  ·  Grade %s", r.Score, r.Grade)))
	b.WriteString("\n")

	if bd := r.Breakdown; bd != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Detection  %3d\nDecision   %3d\nReporting  %3d", bd.Detection, bd.Decision, bd.Reporting))
		b.WriteString("\n")
	}

	if len(r.Detail) > 0 {
		b.WriteString("\n")
		for _, line := range r.Detail {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Signal).Width(cw - 6).Render("· " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
		Render(fmt.Sprintf("+%d intel", r.Intel)))

	if rc := r.RankChange; rc != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Promoted: %s → %s", rc.From, rc.To)))
	}

	if len(r.Unlocked) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Unlocked"))
		for _, m := range r.Unlocked {
			b.WriteString("\n  · " + m.Title)
		}
	}

	card := components.Card(b.String(), cw)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

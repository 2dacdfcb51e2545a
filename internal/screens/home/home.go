// Package home is the main menu.
package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/academy"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/screens/history"
	"github.com/lauralie13/Spy-Academy/internal/screens/missionboard"
	"github.com/lauralie13/Spy-Academy/internal/screens/quiz"
	"github.com/lauralie13/Spy-Academy/internal/screens/settings"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// Menu entries, in display order.
const (
	itemPlacement = iota
	itemAcademy
	itemDrill
	itemMissions
	itemHistory
	itemSettings
	itemExit
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	d      *deps.Deps
	menu   components.Menu
	stats  progress.Stats
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d *deps.Deps) *HomeScreen {
	h := &HomeScreen{d: d}
	h.menu = components.NewMenu([]components.MenuItem{
		itemPlacement: {Label: "PLACEMENT", Action: h.startPlacement},
		itemAcademy:   {Label: "ACADEMY", Action: push(func() screen.Screen { return academy.New(d) })},
		itemDrill:     {Label: "REVIEW DRILL", Action: h.startDrill},
		itemMissions:  {Label: "MISSIONS", Action: push(func() screen.Screen { return missionboard.New(d) })},
		itemHistory:   {Label: "HISTORY", Action: push(func() screen.Screen { return history.New(d) })},
		itemSettings:  {Label: "SETTINGS", Action: push(func() screen.Screen { return settings.New(d) })},
		itemExit:      {Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) refresh() {
	h.stats = h.d.Progress.Stats()
	label := "REVIEW DRILL"
	if h.stats.Due > 0 {
		label = fmt.Sprintf("REVIEW DRILL (%d)", h.stats.Due)
	}
	h.menu.Items[itemDrill].Label = label
}

func (h *HomeScreen) startPlacement() tea.Cmd {
	plan := session.BuildPlacement(h.d.Progress.Catalog(), h.d.Rand)
	if plan.Len() == 0 {
		h.notice = "The catalog has no placement questions."
		return nil
	}
	s := quiz.New(h.d, plan, "Placement")
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) startDrill() tea.Cmd {
	plan, err := session.BuildDrill(h.d.Progress.Catalog(), h.d.Progress.DueObjectives(), h.d.Rand)
	if errors.Is(err, session.ErrNothingDue) {
		h.notice = "Nothing is due. Run a placement or practice in the Academy."
		return nil
	}
	if err != nil {
		h.notice = err.Error()
		return nil
	}
	s := quiz.New(h.d, plan, "Review Drill")
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.notice = ""
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		h.notice = ""
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and gaps
	compact := height+8 < 34 || width < 90
	cw := components.ContentWidth(width)

	var sections []string
	if !compact {
		sections = append(sections, center(RenderBadge(VariantFor(h.stats)), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Warning).Width(cw).Align(lipgloss.Center).Render(h.notice))
	}
	if compact {
		sections = append(sections, center(h.menu.View(), cw))
	} else {
		sections = append(sections, center(h.menu.ButtonView(), cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func center(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

// renderStatsBar shows mastered, due and rank progress in a bordered box.
func renderStatsBar(st progress.Stats, cw int, compact bool) string {
	mastered := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	due := lipgloss.NewStyle().Foreground(theme.Signal).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	dueText := dim.Render("⚡ NONE DUE")
	if st.Due > 0 {
		dueText = due.Render(fmt.Sprintf("⚡ %d DUE", st.Due))
	}
	line := fmt.Sprintf("%s  %s", mastered.Render(fmt.Sprintf("★ %d MASTERED", st.Mastered)), dueText)
	if st.Flagged > 0 {
		line += "  " + lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
			Render(fmt.Sprintf("⚑ %d FLAGGED", st.Flagged))
	}

	if !compact && st.NextRank != st.Rank {
		bar := components.ProgressBar{
			Percent: st.RankProgress,
			Width:   max(cw-30, 10),
			Fill:    theme.Accent,
		}
		line += "\n" + dim.Render(fmt.Sprintf("%s → %s  ", st.Rank, st.NextRank)) + bar.View()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Signal).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

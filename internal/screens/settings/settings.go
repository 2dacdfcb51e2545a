// Package settings toggles accessibility preferences and resets progress.
package settings

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

const (
	optDyslexia = iota
	optReduceMotion
	optReset
	optCount
)

// SettingsScreen implements screen.Screen.
type SettingsScreen struct {
	d            *deps.Deps
	cursor       int
	confirmReset bool
	notice       string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscapeHandler = (*SettingsScreen)(nil)

// New creates the settings screen.
func New(d *deps.Deps) *SettingsScreen {
	return &SettingsScreen{d: d}
}

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) Title() string { return "Settings" }

// HandlesEscape is true while the reset prompt is open so Esc cancels it.
func (s *SettingsScreen) HandlesEscape() bool { return s.confirmReset }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase everything"},
			{Key: "N/Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/Space", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmReset {
		s.confirmReset = false
		if key == "y" {
			ps := s.d.Progress
			ps.Reset()
			ps.InitializeData()
			s.d.Logger().Info("progress reset from settings")
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		s.notice = "Reset cancelled."
		return s, nil
	}

	s.notice = ""
	switch key {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, optCount-1)
	case "enter", "space", " ":
		switch s.cursor {
		case optDyslexia:
			s.d.Progress.ToggleDyslexiaMode()
		case optReduceMotion:
			s.d.Progress.ToggleReduceMotion()
		case optReset:
			s.confirmReset = true
		}
	}
	return s, nil
}

func (s *SettingsScreen) View(width, height int) string {
	st := s.d.Progress.Settings()
	cw := components.ContentWidth(width)

	rows := []struct {
		label string
		on    bool
		help  string
	}{
		{"Dyslexia-friendly text", st.DyslexiaMode, "Narrower lines with extra spacing."},
		{"Reduce motion", st.ReduceMotion, "Skip the intro and loading animations."},
	}

	var b strings.Builder
	for i, r := range rows {
		state := components.Badge("OFF", theme.Border)
		if r.on {
			state = components.Badge("ON", theme.Success)
		}
		b.WriteString(optionLine(r.label, i == s.cursor) + "  " + state)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + r.help))
		b.WriteString("\n\n")
	}
	b.WriteString(optionLine("Reset all progress", s.cursor == optReset))

	if s.confirmReset {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("This erases mastery, intel, missions and settings. Continue? (y/n)"))
	}
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.notice))
	}

	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func optionLine(label string, selected bool) string {
	if selected {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Unselected.Render("  " + label)
}

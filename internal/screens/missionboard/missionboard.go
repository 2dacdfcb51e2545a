// Package missionboard lists every mission with its lock state and latest
// score, and opens the selected one.
package missionboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/screens/mission"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

type row struct {
	mission catalog.Mission
	open    bool
	done    bool
	score   int
}

// BoardScreen implements screen.Screen.
type BoardScreen struct {
	d      *deps.Deps
	rows   []row
	cursor int
}

var _ screen.Screen = (*BoardScreen)(nil)
var _ screen.KeyHintProvider = (*BoardScreen)(nil)
var _ screen.Resumer = (*BoardScreen)(nil)

// New creates the mission board.
func New(d *deps.Deps) *BoardScreen {
	s := &BoardScreen{d: d}
	s.refresh()
	return s
}

func (s *BoardScreen) refresh() {
	ps := s.d.Progress
	s.rows = s.rows[:0]
	for _, m := range ps.Catalog().Missions() {
		r := row{mission: m, open: ps.Unlocked(m.ID)}
		if mr, ok := ps.MissionResult(m.ID); ok && mr.Completed {
			r.done = true
			r.score = mr.Score
		}
		s.rows = append(s.rows, r)
	}
	s.cursor = min(s.cursor, max(len(s.rows)-1, 0))
}

func (s *BoardScreen) Init() tea.Cmd { return nil }

func (s *BoardScreen) Title() string { return "Missions" }

func (s *BoardScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *BoardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(s.rows)-1)
	case "enter":
		if s.cursor < len(s.rows) && s.rows[s.cursor].open {
			id := s.rows[s.cursor].mission.ID
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: mission.New(s.d, id)}
			}
		}
	}
	return s, nil
}

func (s *BoardScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return theme.Line(width, theme.TextDim).Render("\n\n\n  No missions in this catalog.")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	for i, r := range s.rows {
		var status string
		switch {
		case !r.open:
			status = "LOCKED"
		case r.done:
			status = fmt.Sprintf("last %d", r.score)
		default:
			status = "NEW"
		}
		name := fmt.Sprintf("%-28s %-18s %8s", truncate(r.mission.Title, 28), r.mission.Type.DisplayName(), status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case !r.open:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case r.done:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
			if r.open {
				style = theme.Selected
			}
		}
		b.WriteString(style.Render(prefix + name))
		b.WriteString("\n")
	}

	sel := s.rows[s.cursor]
	b.WriteString("\n")
	lore := sel.mission.Lore
	if !sel.open {
		lore = "Complete earlier missions to unlock this file."
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render(layout.Readable(lore, cw-4, s.d.Readable())))

	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), max(cw, 64)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

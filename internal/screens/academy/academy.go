// Package academy shows every domain and objective with its mastery, and
// opens an objective for lessons and practice.
package academy

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

type rowKind int

const (
	rowDomainHeader rowKind = iota
	rowObjective
)

type row struct {
	kind      rowKind
	domain    string
	heat      progress.DomainHeat
	objective catalog.Objective
}

// AcademyScreen lists objectives grouped by domain.
type AcademyScreen struct {
	d            *deps.Deps
	rows         []row
	cursor       int
	scrollOffset int
	now          time.Time
}

var _ screen.Screen = (*AcademyScreen)(nil)
var _ screen.KeyHintProvider = (*AcademyScreen)(nil)
var _ screen.Resumer = (*AcademyScreen)(nil)

// New creates a new AcademyScreen.
func New(d *deps.Deps) *AcademyScreen {
	s := &AcademyScreen{d: d}
	s.refresh()

	for i, r := range s.rows {
		if r.kind == rowObjective {
			s.cursor = i
			break
		}
	}
	return s
}

// refresh rebuilds the rows from the store, keeping the cursor on the
// same objective.
func (s *AcademyScreen) refresh() {
	var current string
	if s.cursor < len(s.rows) {
		current = s.rows[s.cursor].objective.ID
	}

	ps := s.d.Progress
	s.now = time.Now()
	byDomain := make(map[string][]catalog.Objective)
	for _, o := range ps.Objectives() {
		byDomain[o.Domain] = append(byDomain[o.Domain], o)
	}

	s.rows = s.rows[:0]
	for _, h := range ps.DomainHeat() {
		s.rows = append(s.rows, row{kind: rowDomainHeader, domain: h.Domain, heat: h})
		for _, o := range byDomain[h.Domain] {
			s.rows = append(s.rows, row{kind: rowObjective, domain: h.Domain, objective: o})
		}
	}

	if current == "" {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowObjective && r.objective.ID == current {
			s.cursor = i
			return
		}
	}
}

func (s *AcademyScreen) Init() tea.Cmd {
	return nil
}

func (s *AcademyScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *AcademyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.jumpDomain(1)
		case "shift+tab":
			s.jumpDomain(-1)
		case "enter":
			return s, s.selectObjective()
		}
	}
	return s, nil
}

func (s *AcademyScreen) Title() string {
	return "Academy"
}

func (s *AcademyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Domain"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping domain headers.
func (s *AcademyScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowObjective {
			s.cursor = next
			return
		}
	}
}

// jumpDomain moves to the first objective of the next or previous domain
// that has any.
func (s *AcademyScreen) jumpDomain(dir int) {
	if len(s.rows) == 0 {
		return
	}
	domain := s.rows[s.cursor].domain
	for i := s.cursor + dir; i >= 0 && i < len(s.rows); i += dir {
		r := s.rows[i]
		if r.kind != rowObjective || r.domain == domain {
			continue
		}
		// walk back to the first objective of that domain
		for i > 0 && s.rows[i-1].kind == rowObjective && s.rows[i-1].domain == r.domain {
			i--
		}
		s.cursor = i
		return
	}
}

func (s *AcademyScreen) selectObjective() tea.Cmd {
	if s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowObjective {
		return nil
	}
	detail := newDetail(s.d, s.rows[s.cursor].objective.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// adjustScroll keeps the cursor and its domain header in view.
func (s *AcademyScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowDomainHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *AcademyScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return theme.Line(width, theme.TextDim).Render("\n\n\n  No objectives in this catalog.")
	}
	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		if r.kind == rowDomainHeader {
			lines = append(lines, renderDomainHeader(r.heat, width))
		} else {
			lines = append(lines, s.renderObjectiveRow(r.objective, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func renderDomainHeader(h progress.DomainHeat, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(strings.ToUpper(h.Domain))
	bar := components.ProgressBar{
		Percent:     h.Mastery / 100,
		ShowPercent: true,
		Width:       24,
		Fill:        components.MasteryColor(h.Mastery),
	}
	counts := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d mastered", h.Mastered, h.Total))
	return lipgloss.NewStyle().Width(width).Padding(1, 0, 0, 2).
		Render(name + "  " + bar.View() + "  " + counts)
}

func (s *AcademyScreen) renderObjectiveRow(o catalog.Objective, selected bool, width int) string {
	nameWidth := max(width-48, 12)
	title := o.Title
	if r := []rune(title); len(r) > nameWidth {
		title = string(r[:nameWidth-1]) + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case o.Status == mastery.StatusMastered:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
	case o.Status == mastery.StatusUnseen:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	bar := components.ProgressBar{
		Percent: o.Mastery / 100,
		Width:   12,
		Fill:    components.MasteryColor(o.Mastery),
	}

	var badges []string
	if o.IsDue(s.now) {
		badges = append(badges, components.Badge("DUE", theme.Signal))
	}
	if o.Misconception {
		badges = append(badges, components.Badge("⚑", theme.Warning))
	}

	return fmt.Sprintf("  %s%s %s %3.0f  %-9s %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, title)),
		bar.View(),
		o.Mastery,
		o.Status.DisplayName(),
		strings.Join(badges, " "),
	)
}

// Package history lists past sessions and mission runs from the event log.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/store"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// Rows loaded per list.
const (
	sessionLimit = 50
	missionLimit = 50
	answerLimit  = 1000
)

type tab int

const (
	tabSessions tab = iota
	tabMissions
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Answers  map[string][]store.AnswerEventRecord // sessionID → answers
	Missions []store.MissionEventRecord
	Err      error
}

// HistoryScreen displays past sessions and mission results.
type HistoryScreen struct {
	d        *deps.Deps
	tab      tab
	sessions []store.SessionSummaryRecord
	answers  map[string][]store.AnswerEventRecord
	missions []store.MissionEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{
		d:        d,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, ctx := s.d.Events, s.d.Context()
	return func() tea.Msg {
		if events == nil {
			return historyLoadedMsg{}
		}
		return load(ctx, events)
	}
}

func load(ctx context.Context, events store.EventRepo) historyLoadedMsg {
	sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	missions, err := events.QueryMissionEvents(ctx, store.QueryOpts{Limit: missionLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	// Answers only feed the expanded view, so a failure here is not fatal.
	bySession := make(map[string][]store.AnswerEventRecord)
	if answers, err := events.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answerLimit}); err == nil {
		for _, a := range answers {
			bySession[a.SessionID] = append(bySession[a.SessionID], a)
		}
	}
	return historyLoadedMsg{Sessions: sessions, Answers: bySession, Missions: missions}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Sessions/Missions"}}
	if s.tab == tabSessions {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Details"})
	}
	return append(hints,
		layout.KeyHint{Key: "↑↓", Description: "Navigate"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *HistoryScreen) listLen() int {
	if s.tab == tabMissions {
		return len(s.missions)
	}
	return len(s.sessions)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.answers = msg.Answers
			s.missions = msg.Missions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.tab = 1 - s.tab
			s.selected = 0
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = max(min(s.selected+1, s.listLen()-1), 0)
		case "enter":
			if s.tab == tabSessions {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Line(width, theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Line(width, theme.TextDim).Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	var lines []string
	if s.tab == tabSessions {
		lines = s.sessionLines()
	} else {
		lines = s.missionLines()
	}
	if len(lines) == 0 {
		empty := "No sessions yet. Run a placement to begin."
		if s.tab == tabMissions {
			empty = "No missions flown yet."
		}
		return b.String() + theme.Line(width, theme.TextDim).Italic(true).Render(empty)
	}
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
	sess, miss := idle, idle
	if s.tab == tabSessions {
		sess = active
	} else {
		miss = active
	}
	return sess.Render("SESSIONS") + "  " + miss.Render("MISSIONS")
}

func (s *HistoryScreen) style(i int) (string, lipgloss.Style) {
	if i == s.selected {
		return "> ", lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return "  ", lipgloss.NewStyle().Foreground(theme.Text)
}

func (s *HistoryScreen) sessionLines() []string {
	var lines []string
	for i, sess := range s.sessions {
		var accuracy float64
		if sess.QuestionsServed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsServed) * 100
		}
		prefix, style := s.style(i)
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %-9s %d:%02d  %2d questions  %3.0f%% accuracy",
			prefix,
			sess.Timestamp.Local().Format("Jan 02, 2006"),
			sess.Kind,
			sess.DurationSecs/60, sess.DurationSecs%60,
			sess.QuestionsServed,
			accuracy)))

		if s.expanded[i] {
			lines = append(lines, domainLines(s.answers[sess.SessionID])...)
		}
	}
	return lines
}

// domainLines summarizes a session's answers per domain.
func domainLines(answers []store.AnswerEventRecord) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(answers) == 0 {
		return []string{dim.Render("    No answers recorded")}
	}

	type tally struct{ correct, total int }
	byDomain := make(map[string]*tally)
	for _, a := range answers {
		t := byDomain[a.Domain]
		if t == nil {
			t = &tally{}
			byDomain[a.Domain] = t
		}
		t.total++
		if a.Correct {
			t.correct++
		}
	}
	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	lines := make([]string, 0, len(domains))
	for _, d := range domains {
		t := byDomain[d]
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("    %-28s %d/%d", d, t.correct, t.total)))
	}
	return lines
}

func (s *HistoryScreen) missionLines() []string {
	cat := s.d.Progress.Catalog()
	var lines []string
	for i, m := range s.missions {
		title := m.MissionID
		if cm, ok := cat.Mission(m.MissionID); ok {
			title = cm.Title
		}
		prefix, style := s.style(i)
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %-28s %3d  %-2s  +%d intel",
			prefix,
			m.Timestamp.Local().Format("Jan 02, 2006"),
			title,
			m.Score,
			m.Grade,
			m.Intel)))
	}
	return lines
}

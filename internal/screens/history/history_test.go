package history

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

func newScreen(t *testing.T) *HistoryScreen {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return New(&deps.Deps{Progress: progress.New(cat)})
}

func loaded() historyLoadedMsg {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return historyLoadedMsg{
		Sessions: []store.SessionSummaryRecord{
			{SessionID: "s1", Kind: "drill", Timestamp: ts, QuestionsServed: 4, CorrectAnswers: 3, DurationSecs: 125},
		},
		Answers: map[string][]store.AnswerEventRecord{
			"s1": {
				{AnswerEventData: store.AnswerEventData{SessionID: "s1", Domain: "Network Defense", Correct: true}},
				{AnswerEventData: store.AnswerEventData{SessionID: "s1", Domain: "Network Defense", Correct: false}},
			},
		},
		Missions: []store.MissionEventRecord{
			{MissionEventData: store.MissionEventData{MissionID: "m-loghunt-1", Score: 88, Grade: "B", Intel: 176}, Timestamp: ts},
		},
	}
}

func TestNoEventRepoShowsEmpty(t *testing.T) {
	s := newScreen(t)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No sessions yet") {
		t.Error("expected the empty message")
	}
}

func TestSessionsAndExpand(t *testing.T) {
	s := newScreen(t)
	s.Update(loaded())

	view := s.View(120, 30)
	if !strings.Contains(view, "75% accuracy") {
		t.Errorf("session line missing accuracy:\n%s", view)
	}
	if !strings.Contains(view, "2:05") {
		t.Error("session line should show the duration")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "1/2") {
		t.Error("expanded session should show the per-domain tally")
	}
}

func TestMissionTab(t *testing.T) {
	s := newScreen(t)
	s.Update(loaded())
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	view := s.View(120, 30)
	if !strings.Contains(view, "+176 intel") {
		t.Errorf("mission line missing intel:\n%s", view)
	}
	if strings.Contains(view, "m-loghunt-1") {
		t.Error("mission should show its catalog title, not its id")
	}
}

func TestSelectionClamped(t *testing.T) {
	s := newScreen(t)
	s.Update(loaded())
	for range 3 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0 with one session", s.selected)
	}
}

package missionboard

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
)

func testDeps(t *testing.T) *deps.Deps {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	ps := progress.New(cat)
	ps.InitializeData()
	return &deps.Deps{Progress: ps}
}

func TestOnlyFirstMissionOpenAtStart(t *testing.T) {
	s := New(testDeps(t))
	if len(s.rows) == 0 {
		t.Fatal("expected missions")
	}
	if !s.rows[0].open {
		t.Error("first mission should be open")
	}
	for _, r := range s.rows[1:] {
		if r.open {
			t.Errorf("%s should start locked", r.mission.ID)
		}
	}
}

func TestEnterOpensOnlyUnlocked(t *testing.T) {
	s := New(testDeps(t))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on an open mission should push a screen")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter on a locked mission should do nothing")
	}
}

func TestResumeRefreshesAfterCompletion(t *testing.T) {
	d := testDeps(t)
	s := New(d)

	d.Progress.UpdateMissionResult(s.rows[0].mission.ID, 72)
	s.Resume()

	if !s.rows[0].done || s.rows[0].score != 72 {
		t.Errorf("row 0 = %+v, want done with score 72", s.rows[0])
	}
	if !s.rows[1].open {
		t.Error("the follow-up mission should be unlocked after a refresh")
	}
}

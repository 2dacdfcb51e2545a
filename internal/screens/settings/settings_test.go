package settings

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
)

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
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

func TestToggles(t *testing.T) {
	d := testDeps(t)
	s := New(d)

	s.Update(enter)
	if !d.Progress.Settings().DyslexiaMode {
		t.Error("enter should toggle dyslexia mode on")
	}
	s.Update(down)
	s.Update(enter)
	if !d.Progress.Settings().ReduceMotion {
		t.Error("enter should toggle reduce motion on")
	}
	s.Update(enter)
	if d.Progress.Settings().ReduceMotion {
		t.Error("second toggle should turn reduce motion off")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	d := testDeps(t)
	d.Progress.MarkEthicsAccepted()
	s := New(d)

	s.Update(down)
	s.Update(down)
	s.Update(enter)
	if !s.confirmReset || !s.HandlesEscape() {
		t.Fatal("reset should ask for confirmation")
	}

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.confirmReset {
		t.Error("n should cancel")
	}
	if !d.Progress.Settings().EthicsAccepted {
		t.Error("cancel must not reset")
	}

	s.Update(enter)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("confirming should navigate home")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
	if d.Progress.Settings().EthicsAccepted {
		t.Error("reset should clear settings")
	}
	if len(d.Progress.Objectives()) == 0 {
		t.Error("objectives should be re-initialized after reset")
	}
}

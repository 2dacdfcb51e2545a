package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
)

func testDeps(t *testing.T, opts ...progress.Option) *deps.Deps {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	ps := progress.New(cat, opts...)
	ps.InitializeData()
	return &deps.Deps{Progress: ps}
}

func selectItem(h *HomeScreen, item int) tea.Cmd {
	h.menu.Selected = item
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestDrillWithNothingDueShowsNotice(t *testing.T) {
	h := New(testDeps(t))

	if cmd := selectItem(h, itemDrill); cmd != nil {
		t.Fatal("drill with nothing due should not navigate")
	}
	if !strings.Contains(h.notice, "Nothing is due") {
		t.Errorf("notice = %q", h.notice)
	}
	if !strings.Contains(h.View(120, 40), "Nothing is due") {
		t.Error("notice should render")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.notice != "" {
		t.Error("any key should clear the notice")
	}
}

func TestDrillWithDueObjectivePushesQuiz(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := now
	d := testDeps(t, progress.WithClock(func() time.Time { return clock }))

	q := d.Progress.Catalog().Questions()[0]
	d.Progress.RecordAnswer(q.ID, false, 50)
	clock = now.Add(48 * time.Hour)

	h := New(d)
	if h.stats.Due == 0 {
		t.Fatal("expected a due objective")
	}
	if !strings.Contains(h.menu.Items[itemDrill].Label, "(") {
		t.Errorf("drill label %q should show the due count", h.menu.Items[itemDrill].Label)
	}

	cmd := selectItem(h, itemDrill)
	if cmd == nil {
		t.Fatal("expected navigation")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestMenuPushesScreens(t *testing.T) {
	for _, item := range []int{itemPlacement, itemAcademy, itemMissions, itemHistory, itemSettings} {
		h := New(testDeps(t))
		cmd := selectItem(h, item)
		if cmd == nil {
			t.Fatalf("item %d: expected a command", item)
		}
		if _, ok := cmd().(router.PushScreenMsg); !ok {
			t.Errorf("item %d: expected PushScreenMsg, got %T", item, cmd())
		}
	}
}

func TestVariantFor(t *testing.T) {
	tests := []struct {
		name string
		st   progress.Stats
		want BadgeVariant
	}{
		{"fresh", progress.Stats{}, BadgeIdle},
		{"mastered", progress.Stats{Mastered: 2}, BadgeDecorated},
		{"due", progress.Stats{Mastered: 2, Due: 3}, BadgeAlert},
		{"flagged", progress.Stats{Flagged: 1}, BadgeAlert},
	}
	for _, tt := range tests {
		if got := VariantFor(tt.st); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

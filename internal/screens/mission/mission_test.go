package mission

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func testDeps(t *testing.T) *deps.Deps {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	ps := progress.New(cat)
	ps.InitializeData()
	return &deps.Deps{Progress: ps, Missions: missions.NewService(ps, nil, nil)}
}

func mustMission(t *testing.T, d *deps.Deps, id string) catalog.Mission {
	t.Helper()
	m, ok := d.Progress.Catalog().Mission(id)
	if !ok {
		t.Fatalf("mission %q not in catalog", id)
	}
	return m
}

func load(t *testing.T, s *MissionScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestLockedMissionShowsError(t *testing.T) {
	d := testDeps(t)
	s := New(d, "m-detector-1")
	load(t, s)

	if s.errMsg == "" {
		t.Fatal("expected an error for a locked mission")
	}
	_, cmd := s.Update(key('x'))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestUnknownMissionShowsError(t *testing.T) {
	s := New(testDeps(t), "m-nope")
	load(t, s)
	if !strings.Contains(s.errMsg, "m-nope") {
		t.Errorf("errMsg = %q, want mention of the mission id", s.errMsg)
	}
}

func TestEscapeOnlyDuringTask(t *testing.T) {
	s := New(testDeps(t), "m-loghunt-1")
	load(t, s)

	if s.HandlesEscape() {
		t.Error("briefing should leave Esc to the app")
	}
	s.Update(enter)
	if s.phase != phaseTask {
		t.Fatalf("phase = %d, want task", s.phase)
	}
	if !s.HandlesEscape() {
		t.Error("task phase should handle Esc")
	}
}

func TestLogHuntFlow(t *testing.T) {
	d := testDeps(t)
	s := New(d, "m-loghunt-1")
	load(t, s)
	s.Update(enter)

	s.Update(key('5'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(enter)

	lh := s.task.(*logHunt)
	if lh.mitigation != 1 {
		t.Fatalf("mitigation = %d, want 1", lh.mitigation)
	}
	if lh.focus != fieldReport {
		t.Fatalf("focus = %d, want report", lh.focus)
	}
	lh.report.SetValue(strings.TrimSpace(strings.Repeat("word ", 60)))

	s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if s.phase != phaseResult {
		t.Fatalf("phase = %d, want result (err %q)", s.phase, s.errMsg)
	}
	if s.result.Score != 100 || !s.result.Passed {
		t.Errorf("result = %d passed=%v, want 100 passed", s.result.Score, s.result.Passed)
	}
	if len(s.result.Unlocked) != 1 || s.result.Unlocked[0].ID != "m-zones-1" {
		t.Errorf("unlocked = %v, want m-zones-1", s.result.Unlocked)
	}
	if !d.Progress.Unlocked("m-zones-1") {
		t.Error("m-zones-1 should be unlocked after the log hunt")
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "MISSION PASSED") {
		t.Error("result view should announce the pass")
	}
}

func TestLogHuntAttemptWithoutInput(t *testing.T) {
	lh := newLogHunt(catalog.LogHuntTasks{Answer: 5})
	a := lh.Attempt()
	if a.LogHunt.Count != -1 {
		t.Errorf("Count = %d, want -1 for an empty field", a.LogHunt.Count)
	}
	if a.LogHunt.Mitigation != -1 {
		t.Errorf("Mitigation = %d, want -1", a.LogHunt.Mitigation)
	}
}

func TestZoneBuilderPlacement(t *testing.T) {
	z := newZoneBuilder(catalog.ZoneBuilderTasks{
		Assets: []catalog.ZoneAsset{
			{Name: "web", CorrectZone: "DMZ"},
			{Name: "db", CorrectZone: "Restricted"},
		},
	})
	if len(z.t.Zones) != len(catalog.DefaultZones) {
		t.Fatalf("zones = %v, want defaults", z.t.Zones)
	}

	z.Update(key('2')) // web -> DMZ, cursor moves to db
	z.Update(tea.KeyPressMsg{Code: tea.KeyLeft})

	got := z.Attempt().Placements
	if got["web"] != "DMZ" {
		t.Errorf("web = %q, want DMZ", got["web"])
	}
	if got["db"] != "Restricted" {
		t.Errorf("db = %q, want Restricted (left wraps)", got["db"])
	}

	_, submit := z.Update(enter)
	if !submit {
		t.Error("enter should submit")
	}
}

func TestDialogueSteps(t *testing.T) {
	dl := newDialogue(catalog.DialogueTasks{
		Steps: []catalog.DialogueStep{
			{Speaker: "Caller", Text: "Code?", Options: []catalog.DialogueOption{{Label: "a"}, {Label: "b", Score: 2, Note: "good"}}},
			{Speaker: "Caller", Text: "Now?", Options: []catalog.DialogueOption{{Label: "c", Score: 1}}},
		},
	})

	dl.Update(key('9'))
	if dl.showing {
		t.Fatal("out-of-range reply should be ignored")
	}
	dl.Update(key('2'))
	if !dl.showing || dl.note != "good" {
		t.Fatalf("showing=%v note=%q, want the note of reply 2", dl.showing, dl.note)
	}
	if _, submit := dl.Update(enter); submit {
		t.Fatal("should not submit before the last step")
	}
	dl.Update(key('1'))
	if _, submit := dl.Update(enter); !submit {
		t.Fatal("continuing past the last step should submit")
	}

	choices := dl.Attempt().Choices
	if len(choices) != 2 || choices[0] != 1 || choices[1] != 0 {
		t.Errorf("choices = %v, want [1 0]", choices)
	}
}

func TestDetectorThreshold(t *testing.T) {
	dt, err := newDetector(catalog.DetectorTasks{
		DatasetCSV:     "user,posts,likes\na,50,0\nb,30,0",
		ThresholdField: "posts",
	})
	if err != nil {
		t.Fatalf("newDetector: %v", err)
	}
	if dt.threshold != catalog.DefaultDetectorThreshold {
		t.Errorf("threshold = %d, want default", dt.threshold)
	}

	dt.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if got := dt.Attempt().Threshold; got != catalog.DefaultDetectorThreshold+thresholdStep {
		t.Errorf("threshold = %d after up", got)
	}
	for range 10 {
		dt.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if dt.threshold != 0 {
		t.Errorf("threshold = %d, want clamp at 0", dt.threshold)
	}
	if !strings.Contains(dt.View(100, false), "2 flagged") {
		t.Error("view should count flagged accounts at threshold 0")
	}
}

func TestDetectorBadDataset(t *testing.T) {
	_, err := newDetector(catalog.DetectorTasks{DatasetCSV: "user,posts\n\"broken"})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestPhishingAnswers(t *testing.T) {
	p := newPhishing(catalog.PhishingTasks{Questions: []catalog.PhishingQuestion{
		{Prompt: "SPF?", Answer: "no"},
		{Prompt: "DKIM?", Answer: "no"},
		{Prompt: "Call?", Answer: "yes"},
	}})

	p.Update(key('n'))
	p.Update(key('n'))
	p.Update(key('y'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	p.Update(key('y'))

	got := p.Attempt().Answers
	want := []string{"no", "yes", "yes"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewTaskRejectsRawTasks(t *testing.T) {
	_, err := newTask(catalog.Mission{Type: "crypto-lab", Tasks: catalog.RawTasks{}})
	if err == nil {
		t.Fatal("expected an error for an unplayable mission type")
	}
}

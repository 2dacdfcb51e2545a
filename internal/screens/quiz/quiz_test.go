package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/session"
)

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testDeps(t *testing.T) *deps.Deps {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	ps := progress.New(cat)
	ps.InitializeData()
	return &deps.Deps{Progress: ps, Runner: session.NewRunner(ps)}
}

// questionWithModes finds a question that carries alternative explanations.
func questionWithModes(t *testing.T, cat *catalog.Catalog) catalog.Question {
	t.Helper()
	for _, q := range cat.Questions() {
		if len(q.AltExplanations) > 0 {
			return q
		}
	}
	t.Fatal("catalog has no question with alternative explanations")
	return catalog.Question{}
}

func startOne(t *testing.T, d *deps.Deps, q catalog.Question) *QuizScreen {
	t.Helper()
	plan := &session.Plan{Kind: session.KindPractice, QuestionIDs: []string{q.ID}, ObjectiveID: q.ObjectiveID}
	s := New(d, plan, "Practice")
	s.Update(s.Init()())
	if s.errMsg != "" {
		t.Fatalf("start: %s", s.errMsg)
	}
	return s
}

func digit(i int) tea.KeyPressMsg {
	return key(rune('1' + i))
}

func TestCorrectAnswerFlow(t *testing.T) {
	d := testDeps(t)
	q := d.Progress.Catalog().Questions()[0]
	s := startOne(t, d, q)

	if s.step != stepChoose {
		t.Fatalf("step = %d, want choose", s.step)
	}
	s.Update(digit(q.AnswerIndex))
	if s.step != stepConfidence {
		t.Fatalf("step = %d, want confidence", s.step)
	}
	s.Update(key('8'))
	s.Update(enter)

	if s.step != stepFeedback {
		t.Fatalf("step = %d, want feedback (err %q)", s.step, s.errMsg)
	}
	if s.last == nil || !s.last.Correct {
		t.Fatal("answer should be recorded as correct")
	}
	if s.last.Confidence != 80 {
		t.Errorf("confidence = %d, want 80", s.last.Confidence)
	}
	if !strings.Contains(s.View(100, 40), "intel") {
		t.Error("feedback should show the intel earned")
	}

	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("advancing past the last question should finish")
	}
	_, cmd = s.Update(cmd())
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg to the summary, got %T", cmd())
	}
}

func TestGuessingCapsConfidence(t *testing.T) {
	d := testDeps(t)
	q := d.Progress.Catalog().Questions()[0]
	s := startOne(t, d, q)

	s.Update(digit(q.AnswerIndex))
	s.Update(key('9'))
	s.Update(key('g'))
	if got := s.confidence(); got != GuessingCap {
		t.Errorf("confidence = %d, want %d while guessing", got, GuessingCap)
	}
	s.Update(key('g'))
	if got := s.confidence(); got != 90 {
		t.Errorf("confidence = %d, want 90 after untoggling", got)
	}
}

func TestEscInConfidenceGoesBack(t *testing.T) {
	d := testDeps(t)
	q := d.Progress.Catalog().Questions()[0]
	s := startOne(t, d, q)

	s.Update(digit(q.AnswerIndex))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.step != stepChoose {
		t.Errorf("step = %d, want choose", s.step)
	}
	if s.choice.Submitted {
		t.Error("choice should be reset")
	}
}

func TestQuitConfirm(t *testing.T) {
	d := testDeps(t)
	s := startOne(t, d, d.Progress.Catalog().Questions()[0])

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.quitConfirm {
		t.Fatal("esc should ask before quitting")
	}
	s.Update(key('n'))
	if s.quitConfirm {
		t.Fatal("n should keep going")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(key('y'))
	if cmd == nil {
		t.Fatal("y should finish")
	}
	if _, ok := cmd().(finishMsg); !ok {
		t.Errorf("expected finishMsg, got %T", cmd())
	}
}

func TestAuthoredExplanationsCycle(t *testing.T) {
	d := testDeps(t)
	q := questionWithModes(t, d.Progress.Catalog())
	s := startOne(t, d, q)

	s.Update(digit(q.AnswerIndex))
	s.Update(enter)
	if len(s.modes) != len(q.AltExplanations) {
		t.Fatalf("modes = %v, want %d authored modes", s.modes, len(q.AltExplanations))
	}

	s.Update(key('e'))
	if s.modeIdx != 0 {
		t.Errorf("modeIdx = %d, want 0", s.modeIdx)
	}
	if s.expText != q.AltExplanations[0].Text {
		t.Errorf("expText = %q, want the first authored text", s.expText)
	}
	for range len(s.modes) {
		s.Update(key('e'))
	}
	if s.modeIdx != 0 {
		t.Errorf("modeIdx = %d, want wrap to 0", s.modeIdx)
	}
}

func TestEmptyPlanShowsError(t *testing.T) {
	d := testDeps(t)
	s := New(d, &session.Plan{Kind: session.KindDrill}, "Drill")
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("an empty plan should surface an error")
	}
	_, cmd := s.Update(key('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

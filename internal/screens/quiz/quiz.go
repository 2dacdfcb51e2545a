// Package quiz is the question screen shared by placement, review drills
// and objective practice.
package quiz

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/screens/summary"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/ui/components"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
)

// GuessingCap is the highest confidence recorded when the learner marks
// an answer as a guess.
const GuessingCap = 30

// DefaultConfidence is where the slider starts for each question.
const DefaultConfidence = 50

const explainPollInterval = 150 * time.Millisecond

type step int

const (
	stepChoose step = iota
	stepConfidence
	stepFeedback
)

// QuizScreen serves the questions of one session plan.
type QuizScreen struct {
	d     *deps.Deps
	plan  *session.Plan
	title string

	state    *session.State
	question catalog.Question
	step     step
	choice   components.MultiChoice
	conf     components.Confidence
	guessing bool
	last     *session.Answered

	quitConfirm bool
	errMsg      string

	// Explanation switcher.
	modes      []catalog.ExplanationMode
	modeIdx    int // -1 while showing the rationale
	expText    string
	expLoading bool
	expErr     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for plan.
func New(d *deps.Deps, plan *session.Plan, title string) *QuizScreen {
	return &QuizScreen{
		d:       d,
		plan:    plan,
		title:   title,
		modeIdx: -1,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	d, plan := s.d, s.plan
	return func() tea.Msg {
		st, err := d.Runner.Start(d.Context(), plan)
		return startedMsg{State: st, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return s.title
}

func (s *QuizScreen) HandlesEscape() bool { return true }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.step == stepConfidence:
		return []layout.KeyHint{
			{Key: "←→", Description: "Confidence"},
			{Key: "G", Description: "Guessing"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Change answer"},
		}
	case s.step == stepFeedback:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if len(s.modes) > 0 {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain differently"})
		}
		return hints
	default:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Pick"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.state = msg.State
		s.loadQuestion()
		return s, nil

	case explainPollMsg:
		return s.pollExplanation()

	case finishMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return finishMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.step {
	case stepChoose:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.step = stepConfidence
		}
		return s, cmd

	case stepConfidence:
		switch key {
		case "esc":
			s.choice.Reset()
			s.step = stepChoose
			return s, nil
		case "g", "G":
			s.guessing = !s.guessing
			return s, nil
		case "enter":
			return s.submit()
		}
		var cmd tea.Cmd
		s.conf, cmd = s.conf.Update(msg)
		return s, cmd

	case stepFeedback:
		switch key {
		case "e", "E", "tab":
			return s.nextExplanation()
		case "esc":
			s.quitConfirm = true
			return s, nil
		case "enter", "space", " ", "n":
			return s.advance()
		}
	}
	return s, nil
}

// confidence returns the value recorded for the current answer.
func (s *QuizScreen) confidence() int {
	if s.guessing {
		return min(s.conf.Value, GuessingCap)
	}
	return s.conf.Value
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	a, err := s.d.Runner.Answer(s.d.Context(), s.state, s.choice.ChosenIndex, s.confidence())
	if err != nil {
		if errors.Is(err, session.ErrNotAnswering) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.last = a
	s.choice.Reveal()
	s.step = stepFeedback
	s.modes = s.explanationModes()
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.d.Runner.Next(s.state) {
		return s, func() tea.Msg { return finishMsg{} }
	}
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum, err := s.d.Runner.Finish(s.d.Context(), s.state)
	if err != nil {
		// The summary is still valid; persistence problems are only logged.
		s.d.Logger().Warn("finish session", "session", s.state.SessionID, "error", err)
	}
	next := summary.New(s.d, sum)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) loadQuestion() {
	q, ok := s.d.Progress.Catalog().Question(s.state.CurrentQuestionID())
	if !ok {
		s.errMsg = "question not found: " + s.state.CurrentQuestionID()
		return
	}
	s.question = q
	s.step = stepChoose
	s.choice = components.NewMultiChoice(q.Options, q.AnswerIndex)
	s.conf = components.NewConfidence(DefaultConfidence, 40)
	s.guessing = false
	s.last = nil
	s.modes = nil
	s.modeIdx = -1
	s.expText = ""
	s.expErr = ""
	s.expLoading = false
}

func (s *QuizScreen) explanationModes() []catalog.ExplanationMode {
	if s.d.Explain != nil {
		return s.d.Explain.Modes(s.question)
	}
	var modes []catalog.ExplanationMode
	for _, e := range s.question.AltExplanations {
		modes = append(modes, e.Mode)
	}
	return modes
}

// nextExplanation cycles to the next mode and asks for its text.
func (s *QuizScreen) nextExplanation() (screen.Screen, tea.Cmd) {
	if len(s.modes) == 0 || s.expLoading {
		return s, nil
	}
	s.modeIdx = (s.modeIdx + 1) % len(s.modes)
	mode := s.modes[s.modeIdx]
	s.expErr = ""

	if s.d.Explain == nil {
		s.expText, _ = s.question.Explanation(mode)
		return s, nil
	}
	s.expText = ""
	s.expLoading = true
	s.d.Explain.Request(s.d.Context(), s.question, mode)
	return s, pollCmd()
}

func (s *QuizScreen) pollExplanation() (screen.Screen, tea.Cmd) {
	if !s.expLoading {
		return s, nil
	}
	res, ok := s.d.Explain.Consume()
	if !ok {
		return s, pollCmd()
	}
	s.expLoading = false
	if res.Err != nil {
		s.expErr = res.Err.Error()
		return s, nil
	}
	if res.Explanation.QuestionID == s.question.ID {
		s.expText = res.Explanation.Text
	}
	return s, nil
}

func pollCmd() tea.Cmd {
	return tea.Tick(explainPollInterval, func(t time.Time) tea.Msg {
		return explainPollMsg(t)
	})
}

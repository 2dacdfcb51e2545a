package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/placement"
	"github.com/lauralie13/Spy-Academy/internal/progress"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFeedback              // Showing answer feedback
	PhaseSummary               // Showing summary screen
)

// Answered is one answer given during a session.
type Answered struct {
	QuestionID  string
	ObjectiveID string
	Domain      string
	Choice      int
	Correct     bool
	Confidence  int
	Elapsed     time.Duration

	// Outcome is nil for placement answers, which do not touch the
	// progress store until the quiz is finished.
	Outcome *progress.AnswerOutcome
}

// State tracks the runtime state of an active session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	Plan *Plan

	// Index is the position of the current question in Plan.QuestionIDs.
	Index int

	Phase Phase

	StartTime time.Time

	// QuestionStartTime tracks when the current question was first displayed.
	QuestionStartTime time.Time

	Answers []Answered

	// Last is the most recent answer, shown in the feedback phase.
	Last *Answered

	// Placement is filled in when a placement session finishes.
	Placement *PlacementResult
}

// PlacementResult is what a finished placement quiz produced.
type PlacementResult struct {
	RunID              string
	Profiles           []placement.DomainProfile
	RecommendedDomain  string
	RecommendedMission *catalog.Mission
	Transitions        int
}

// NewState creates the state for a plan starting at now.
func NewState(plan *Plan, now time.Time) *State {
	return &State{
		SessionID:         uuid.NewString(),
		Plan:              plan,
		Phase:             PhaseActive,
		StartTime:         now,
		QuestionStartTime: now,
	}
}

// CurrentQuestionID returns the question being served, or "" when the
// plan is exhausted.
func (s *State) CurrentQuestionID() string {
	if s.Index < 0 || s.Index >= s.Plan.Len() {
		return ""
	}
	return s.Plan.QuestionIDs[s.Index]
}

// Done reports whether every planned question has been answered.
func (s *State) Done() bool {
	return s.Index >= s.Plan.Len()
}

// Correct returns the number of correct answers so far.
func (s *State) Correct() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

package session

import "github.com/lauralie13/Spy-Academy/internal/store"

// Kind identifies what a session is for.
type Kind string

const (
	KindPlacement Kind = "placement"
	KindDrill     Kind = "drill"
	KindPractice  Kind = "practice"
)

// Source returns the answer-event source for the kind.
func (k Kind) Source() string {
	switch k {
	case KindPlacement:
		return store.SourcePlacement
	case KindDrill:
		return store.SourceDrill
	default:
		return store.SourceAcademy
	}
}

// Plan is the ordered list of questions a session serves.
type Plan struct {
	Kind        Kind
	QuestionIDs []string

	// ObjectiveID is set for practice sessions.
	ObjectiveID string
}

// Len returns the number of questions in the plan.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.QuestionIDs)
}

// Drill limits.
const (
	DrillObjectives            = 5
	DrillQuestionsPerObjective = 2
	MaxDrillQuestions          = 10
)

// MaxPracticeQuestions caps a single-objective practice run.
const MaxPracticeQuestions = 5

package session

import (
	"time"

	"github.com/lauralie13/Spy-Academy/internal/diagnosis"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Kind                 Kind
	Duration             time.Duration
	TotalQuestions       int
	TotalCorrect         int
	Accuracy             float64 // 0.0–1.0
	AverageConfidence    float64 // 0–100
	HighConfidenceErrors int
	IntelGained          int

	// Placement is set for placement sessions.
	Placement *PlacementResult
}

// BuildSummary summarizes the answers given so far.
func BuildSummary(st *State, now time.Time) *Summary {
	sum := &Summary{
		Kind:           st.Plan.Kind,
		Duration:       now.Sub(st.StartTime),
		TotalQuestions: len(st.Answers),
		TotalCorrect:   st.Correct(),
		Placement:      st.Placement,
	}

	confSum := 0
	for _, a := range st.Answers {
		confSum += a.Confidence
		if diagnosis.IsHighConfidenceWrong(a.Correct, a.Confidence) {
			sum.HighConfidenceErrors++
		}
		if a.Outcome != nil {
			sum.IntelGained += a.Outcome.IntelGained
		}
	}
	if n := len(st.Answers); n > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(n)
		sum.AverageConfidence = float64(confSum) / float64(n)
	}
	return sum
}

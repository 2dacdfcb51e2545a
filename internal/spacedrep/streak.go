package spacedrep

import (
	"sort"
	"time"
)

// Answer is the minimal view of a recorded answer the streak scan needs.
type Answer struct {
	Correct bool
	At      time.Time
}

// ConsecutiveCorrect counts correct answers from the most recent one
// backwards, stopping at the first incorrect answer. The input order does
// not matter; answers are sorted newest first (stable for equal times).
func ConsecutiveCorrect(answers []Answer) int {
	sorted := make([]Answer, len(answers))
	copy(sorted, answers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.After(sorted[j].At)
	})

	streak := 0
	for _, a := range sorted {
		if !a.Correct {
			break
		}
		streak++
	}
	return streak
}

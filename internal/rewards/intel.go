package rewards

import "math"

// Intel awarded per answer.
const (
	CorrectAnswerBase = 10
	WrongAnswerIntel  = 5
)

// QuestionIntel returns the intel earned by one answer. Correct answers
// earn a bonus of a tenth of the confidence, rounded.
func QuestionIntel(correct bool, confidence int) int {
	if !correct {
		return WrongAnswerIntel
	}
	return CorrectAnswerBase + int(math.Round(float64(confidence)/10))
}

// MissionIntel returns the intel earned by a mission score (0–100).
func MissionIntel(score float64) int {
	return int(math.Round(score * 2))
}

// NextStreakMilestone returns the next answer-streak milestone above the
// current streak length.
func NextStreakMilestone(current int) int {
	milestones := []int{5, 10, 15, 20}
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// IsStreakMilestone reports whether a streak length is worth celebrating.
func IsStreakMilestone(streak int) bool {
	return streak > 0 && streak%5 == 0
}

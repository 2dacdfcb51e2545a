package spacedrep

import "time"

// Review intervals. A wrong answer always brings the objective back the
// next day; correct answers walk up the streak ladder.
const (
	WrongInterval               = 24 * time.Hour
	HighConfidenceWrongInterval = 12 * time.Hour
)

// StreakIntervals is the ladder of review intervals indexed by
// consecutive-correct count. Streaks of zero or one use the first rung
// and anything past the end uses the last.
var StreakIntervals = []time.Duration{
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
}

// NextDue returns when an objective should next be reviewed.
//
// highConfidenceWrong only shortens the interval of a correct answer; an
// incorrect answer is always rescheduled one day out.
func NextDue(now time.Time, correct bool, consecutiveCorrect int, highConfidenceWrong bool) time.Time {
	if !correct {
		return now.Add(WrongInterval)
	}
	if highConfidenceWrong {
		return now.Add(HighConfidenceWrongInterval)
	}
	return now.Add(StreakInterval(consecutiveCorrect))
}

// StreakInterval returns the ladder interval for a correct streak.
func StreakInterval(consecutiveCorrect int) time.Duration {
	idx := consecutiveCorrect - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(StreakIntervals) {
		idx = len(StreakIntervals) - 1
	}
	return StreakIntervals[idx]
}

package mastery

import "math"

const (
	// MaxMastery and MinMastery bound every mastery value.
	MaxMastery = 100.0
	MinMastery = 0.0

	// MasteredThreshold is the mastery an objective needs before it can be
	// considered mastered.
	MasteredThreshold = 80.0

	// MasteredStreak is the consecutive-correct run required alongside
	// MasteredThreshold.
	MasteredStreak = 2

	maxGain = 15.0
	maxLoss = 10.0
)

// Update returns the new mastery after one answer. Correct answers gain
// more the more confident the learner was; wrong answers lose more the
// less confident they were. Callers clamp confidence to [0,100].
func Update(current float64, correct bool, confidence int) float64 {
	conf := float64(confidence)
	if correct {
		gain := math.Min(maxGain, 5+conf/10)
		return math.Min(MaxMastery, current+gain)
	}
	loss := math.Min(maxLoss, 3+(100-conf)/20)
	return math.Max(MinMastery, current-loss)
}

// ShouldBeMastered reports whether mastery and the current correct streak
// are high enough for the objective to count as mastered.
func ShouldBeMastered(mastery float64, consecutiveCorrect int) bool {
	return mastery >= MasteredThreshold && consecutiveCorrect >= MasteredStreak
}

// Clamp bounds v to [MinMastery, MaxMastery].
func Clamp(v float64) float64 {
	return math.Max(MinMastery, math.Min(MaxMastery, v))
}

// ClampConfidence bounds a self-reported confidence to [0,100].
func ClampConfidence(c int) int {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}

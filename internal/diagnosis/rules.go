package diagnosis

// HighConfidenceThreshold is the self-reported confidence at or above
// which a wrong answer counts as a misconception.
const HighConfidenceThreshold = 70

// IsHighConfidenceWrong reports whether an answer was wrong while the
// learner was confident in it.
func IsHighConfidenceWrong(correct bool, confidence int) bool {
	return !correct && confidence >= HighConfidenceThreshold
}

// MisconceptionClassifier flags confident wrong answers.
type MisconceptionClassifier struct{}

func (c *MisconceptionClassifier) Name() string { return "misconception" }

func (c *MisconceptionClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.Confidence >= HighConfidenceThreshold {
		return CategoryMisconception, 0.9
	}
	return "", 0
}

// SpeedRushThresholdMs is the maximum response time (exclusive) for a
// wrong answer to be classified as a speed-rush.
const SpeedRushThresholdMs = 2000

// SpeedRushClassifier flags answers submitted too quickly to have been read.
type SpeedRushClassifier struct{}

func (c *SpeedRushClassifier) Name() string { return "speed-rush" }

func (c *SpeedRushClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.ResponseTimeMs > 0 && input.ResponseTimeMs < SpeedRushThresholdMs {
		return CategorySpeedRush, 0.8
	}
	return "", 0
}

// CarelessMasteryThreshold is the mastery (exclusive) above which a wrong
// answer is treated as a slip rather than a gap.
const CarelessMasteryThreshold = 80.0

// CarelessClassifier flags wrong answers on objectives the learner
// already handles well.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.ObjectiveMastery > CarelessMasteryThreshold {
		return CategoryCareless, 0.7
	}
	return "", 0
}

// GuessConfidenceThreshold is the confidence at or below which a wrong
// answer is treated as an admitted guess.
const GuessConfidenceThreshold = 30

// GuessClassifier flags wrong answers the learner was unsure of.
type GuessClassifier struct{}

func (c *GuessClassifier) Name() string { return "guess" }

func (c *GuessClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.Confidence <= GuessConfidenceThreshold {
		return CategoryGuess, 0.6
	}
	return "", 0
}

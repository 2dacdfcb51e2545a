package diagnosis

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategoryMisconception ErrorCategory = "misconception"
	CategorySpeedRush     ErrorCategory = "speed-rush"
	CategoryCareless      ErrorCategory = "careless"
	CategoryGuess         ErrorCategory = "guess"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// DisplayName returns a short label for review screens.
func (c ErrorCategory) DisplayName() string {
	switch c {
	case CategoryMisconception:
		return "Confident miss"
	case CategorySpeedRush:
		return "Rushed"
	case CategoryCareless:
		return "Slip"
	case CategoryGuess:
		return "Guess"
	default:
		return "Miss"
	}
}

// ClassifyInput holds the context for classifying one wrong answer.
type ClassifyInput struct {
	Confidence       int     // self-reported, 0–100
	ResponseTimeMs   int     // 0 when the host did not time the answer
	ObjectiveMastery float64 // mastery before this answer, 0–100
}

// Result is the output of classifying a wrong answer.
type Result struct {
	Category       ErrorCategory
	Confidence     float64 // 0.0–1.0
	ClassifierName string
}

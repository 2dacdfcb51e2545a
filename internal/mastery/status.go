package mastery

// Status represents an objective's position in the study lifecycle.
type Status string

const (
	StatusUnseen   Status = "unseen"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusUnseen, StatusLearning, StatusMastered}
}

// ParseStatus converts a stored status string. Anything unrecognized is
// coerced to StatusUnseen rather than rejected.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusLearning:
		return StatusLearning
	case StatusMastered:
		return StatusMastered
	default:
		return StatusUnseen
	}
}

// DisplayName returns a human-readable label for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusLearning:
		return "Learning"
	case StatusMastered:
		return "Mastered"
	default:
		return "Unseen"
	}
}

// Transition records a status change for display and event logging.
type Transition struct {
	ObjectiveID string
	Title       string
	From        Status
	To          Status
	Trigger     string // "first-attempt", "mastery-reached", "placement"
}

const (
	TriggerFirstAttempt   = "first-attempt"
	TriggerMasteryReached = "mastery-reached"
	TriggerPlacement      = "placement"
)

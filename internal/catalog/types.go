package catalog

import (
	"time"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/spacedrep"
)

// Objective is a single learnable topic. The catalog supplies its
// identity and initial state; the progress store owns it afterwards.
type Objective struct {
	ID            string
	Domain        string
	Title         string
	Weight        float64
	Status        mastery.Status
	Mastery       float64
	NextDue       time.Time // zero when unscheduled
	Misconception bool
}

// IsDue reports whether the objective is scheduled and due at now.
func (o Objective) IsDue(now time.Time) bool {
	return spacedrep.IsDue(o.NextDue, now)
}

// ExplanationMode names an alternative way of explaining an answer.
type ExplanationMode string

const (
	ModeAnalogy ExplanationMode = "analogy"
	ModePicture ExplanationMode = "picture"
	ModeSteps   ExplanationMode = "steps"
	ModeStory   ExplanationMode = "story"
	ModeTable   ExplanationMode = "table"
	ModeCLI     ExplanationMode = "cli"
)

// AllExplanationModes returns the modes in switcher order.
func AllExplanationModes() []ExplanationMode {
	return []ExplanationMode{ModeAnalogy, ModePicture, ModeSteps, ModeStory, ModeTable, ModeCLI}
}

// AltExplanation is one alternative explanation attached to a question.
type AltExplanation struct {
	Mode ExplanationMode `json:"mode"`
	Text string          `json:"text"`
}

// Question is a multiple-choice item tied to one objective.
type Question struct {
	ID              string           `json:"id"`
	ObjectiveID     string           `json:"objectiveId"`
	Domain          string           `json:"domain"`
	Stem            string           `json:"stem"`
	Options         []string         `json:"options"`
	AnswerIndex     int              `json:"answerIndex"`
	Rationale       string           `json:"rationale"`
	AltExplanations []AltExplanation `json:"altExplanations,omitempty"`
	Difficulty      int              `json:"difficulty,omitempty"` // 1–3, 0 when unrated
}

// IsCorrect reports whether choice is the right option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.AnswerIndex
}

// CorrectOption returns the text of the right option.
func (q Question) CorrectOption() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.AnswerIndex]
}

// Explanation returns the authored explanation for mode, if any.
func (q Question) Explanation(mode ExplanationMode) (string, bool) {
	for _, e := range q.AltExplanations {
		if e.Mode == mode {
			return e.Text, true
		}
	}
	return "", false
}

// MissionType selects a mission's task payload and renderer.
type MissionType string

const (
	MissionLogHunt           MissionType = "log-hunt"
	MissionZoneBuilder       MissionType = "zone-builder"
	MissionDialogue          MissionType = "dialogue"
	MissionDetector          MissionType = "detector"
	MissionPhishingForensics MissionType = "phishing-forensics"
)

// DisplayName returns a human-readable label for the mission type.
func (t MissionType) DisplayName() string {
	switch t {
	case MissionLogHunt:
		return "Log Hunt"
	case MissionZoneBuilder:
		return "Zone Builder"
	case MissionDialogue:
		return "Dialogue"
	case MissionDetector:
		return "Detector"
	case MissionPhishingForensics:
		return "Phishing Forensics"
	default:
		return string(t)
	}
}

// Mission is a scenario exercise.
type Mission struct {
	ID         string
	Title      string
	Type       MissionType
	Objectives []string
	Lore       string
	Tasks      Tasks
	Unlocks    []string
}

// Lesson is a short reading attached to an objective.
type Lesson struct {
	ID          string `json:"id"`
	ObjectiveID string `json:"objectiveId,omitempty"`
	Domain      string `json:"domain"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// Manifest describes a content pack.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

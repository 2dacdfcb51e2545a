package catalog

import (
	"encoding/json"
	"fmt"
)

// Tasks is the type-specific payload of a mission. Each mission type has
// exactly one implementation; unknown types decode to RawTasks.
type Tasks interface {
	MissionType() MissionType
}

// LogHuntTasks asks the learner to count failed logins in an auth log,
// pick a mitigation and write an incident note.
type LogHuntTasks struct {
	LogText           string   `json:"logText"`
	Question          string   `json:"question"`
	Answer            int      `json:"answer"`
	MitigationOptions []string `json:"mitigationOptions"`
	MitigationIndex   int      `json:"mitigationIndex"`
	MinWords          int      `json:"minWords"`
	MaxWords          int      `json:"maxWords"`
}

func (LogHuntTasks) MissionType() MissionType { return MissionLogHunt }

// Default incident-note word band.
const (
	DefaultMinWords = 50
	DefaultMaxWords = 150
)

// ZoneAsset is one asset the learner must place in a network zone.
type ZoneAsset struct {
	Name        string `json:"name"`
	CorrectZone string `json:"correctZone"`
	ControlHint string `json:"controlHint"`
}

// ZoneBuilderTasks asks the learner to assign assets to zones.
type ZoneBuilderTasks struct {
	Zones  []string    `json:"zones"`
	Assets []ZoneAsset `json:"assets"`
}

func (ZoneBuilderTasks) MissionType() MissionType { return MissionZoneBuilder }

// DefaultZones is used when a zone-builder mission lists none.
var DefaultZones = []string{"Public", "DMZ", "Internal", "Restricted"}

// DialogueOption is one reply the learner can choose.
type DialogueOption struct {
	Label string `json:"label"`
	Score int    `json:"score"`
	Note  string `json:"note"`
}

// DialogueStep is one line of the conversation and the learner's replies.
type DialogueStep struct {
	Speaker string           `json:"speaker"`
	Text    string           `json:"text"`
	Options []DialogueOption `json:"options"`
}

// DialogueTasks is a social-engineering roleplay.
type DialogueTasks struct {
	Steps     []DialogueStep `json:"steps"`
	PassScore int            `json:"passScore"`
	Artifact  string         `json:"artifact"`
}

func (DialogueTasks) MissionType() MissionType { return MissionDialogue }

// DefaultPassScore is the dialogue pass mark when none is given.
const DefaultPassScore = 3

// MaxPoints returns the best achievable dialogue score.
func (d DialogueTasks) MaxPoints() int {
	total := 0
	for _, s := range d.Steps {
		best := 0
		for _, o := range s.Options {
			if o.Score > best {
				best = o.Score
			}
		}
		total += best
	}
	return total
}

// DetectorTasks asks the learner to tune a threshold over a CSV dataset
// of accounts to flag likely bots.
type DetectorTasks struct {
	DatasetCSV       string `json:"datasetCsv"`
	ThresholdField   string `json:"thresholdField"`
	DefaultThreshold int    `json:"defaultThreshold"`
	Explain          string `json:"explain"`
}

func (DetectorTasks) MissionType() MissionType { return MissionDetector }

// DefaultDetectorThreshold is used when a detector mission sets none.
const DefaultDetectorThreshold = 20

// PhishingQuestion is one yes/no forensic question about email headers.
type PhishingQuestion struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// PhishingTasks asks the learner to read raw headers and answer questions.
type PhishingTasks struct {
	Headers   string             `json:"headers"`
	Questions []PhishingQuestion `json:"questions"`
	Explain   string             `json:"explain"`
}

func (PhishingTasks) MissionType() MissionType { return MissionPhishingForensics }

// RawTasks keeps the payload of a mission type this build cannot play.
type RawTasks struct {
	Type MissionType
	Raw  json.RawMessage
}

func (r RawTasks) MissionType() MissionType { return r.Type }

// decodeTasks decodes a task payload for the given mission type and
// fills defaults.
func decodeTasks(t MissionType, raw json.RawMessage) (Tasks, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch t {
	case MissionLogHunt:
		var lh LogHuntTasks
		if err := json.Unmarshal(raw, &lh); err != nil {
			return nil, fmt.Errorf("decode %s tasks: %w", t, err)
		}
		if lh.MinWords <= 0 {
			lh.MinWords = DefaultMinWords
		}
		if lh.MaxWords <= 0 {
			lh.MaxWords = DefaultMaxWords
		}
		return lh, nil
	case MissionZoneBuilder:
		var zb ZoneBuilderTasks
		if err := json.Unmarshal(raw, &zb); err != nil {
			return nil, fmt.Errorf("decode %s tasks: %w", t, err)
		}
		if len(zb.Zones) == 0 {
			zb.Zones = append([]string(nil), DefaultZones...)
		}
		return zb, nil
	case MissionDialogue:
		var d DialogueTasks
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s tasks: %w", t, err)
		}
		if d.PassScore <= 0 {
			d.PassScore = DefaultPassScore
		}
		return d, nil
	case MissionDetector:
		var d DetectorTasks
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s tasks: %w", t, err)
		}
		if d.DefaultThreshold <= 0 {
			d.DefaultThreshold = DefaultDetectorThreshold
		}
		return d, nil
	case MissionPhishingForensics:
		var p PhishingTasks
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s tasks: %w", t, err)
		}
		return p, nil
	default:
		return RawTasks{Type: t, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

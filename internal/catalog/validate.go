package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// validate performs the cross-document checks a schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validate(m Manifest, objectives []Objective, questions []Question, missions []Mission, lessons []Lesson) error {
	var errs []string

	if !semver.IsValid(canonicalVersion(m.Version)) {
		errs = append(errs, fmt.Sprintf("manifest version %q is not a semantic version", m.Version))
	}

	objIDs := make(map[string]bool, len(objectives))
	for _, o := range objectives {
		if objIDs[o.ID] {
			errs = append(errs, fmt.Sprintf("duplicate objective ID: %q", o.ID))
		}
		objIDs[o.ID] = true
	}

	qIDs := make(map[string]bool, len(questions))
	for _, q := range questions {
		if qIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		qIDs[q.ID] = true
		if !objIDs[q.ObjectiveID] {
			errs = append(errs, fmt.Sprintf("question %q references nonexistent objective %q", q.ID, q.ObjectiveID))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %q answerIndex %d out of range for %d options", q.ID, q.AnswerIndex, len(q.Options)))
		}
	}

	mIDs := make(map[string]bool, len(missions))
	for _, m := range missions {
		if mIDs[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate mission ID: %q", m.ID))
		}
		mIDs[m.ID] = true
	}
	for _, m := range missions {
		for _, oid := range m.Objectives {
			if !objIDs[oid] {
				errs = append(errs, fmt.Sprintf("mission %q references nonexistent objective %q", m.ID, oid))
			}
		}
		for _, next := range m.Unlocks {
			if !mIDs[next] {
				errs = append(errs, fmt.Sprintf("mission %q unlocks nonexistent mission %q", m.ID, next))
			}
		}
		errs = append(errs, validateTasks(m)...)
	}

	lIDs := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if lIDs[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		lIDs[l.ID] = true
		if l.ObjectiveID != "" && !objIDs[l.ObjectiveID] {
			errs = append(errs, fmt.Sprintf("lesson %q references nonexistent objective %q", l.ID, l.ObjectiveID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateTasks(m Mission) []string {
	var errs []string
	prefix := fmt.Sprintf("mission %q", m.ID)

	switch t := m.Tasks.(type) {
	case LogHuntTasks:
		if t.LogText == "" {
			errs = append(errs, prefix+": log-hunt needs logText")
		}
		if t.MitigationIndex < 0 || t.MitigationIndex >= len(t.MitigationOptions) {
			errs = append(errs, fmt.Sprintf("%s: mitigationIndex %d out of range for %d options", prefix, t.MitigationIndex, len(t.MitigationOptions)))
		}
		if t.MinWords > t.MaxWords {
			errs = append(errs, fmt.Sprintf("%s: minWords %d exceeds maxWords %d", prefix, t.MinWords, t.MaxWords))
		}
	case ZoneBuilderTasks:
		zones := make(map[string]bool, len(t.Zones))
		for _, z := range t.Zones {
			zones[z] = true
		}
		for _, a := range t.Assets {
			if !zones[a.CorrectZone] {
				errs = append(errs, fmt.Sprintf("%s: asset %q placed in unknown zone %q", prefix, a.Name, a.CorrectZone))
			}
		}
	case DialogueTasks:
		for i, s := range t.Steps {
			if len(s.Options) == 0 {
				errs = append(errs, fmt.Sprintf("%s: dialogue step %d has no options", prefix, i))
			}
		}
	case DetectorTasks:
		if t.ThresholdField == "" {
			errs = append(errs, prefix+": detector needs thresholdField")
		}
	case PhishingTasks:
		if len(t.Questions) == 0 {
			errs = append(errs, prefix+": phishing-forensics needs questions")
		}
	}
	return errs
}

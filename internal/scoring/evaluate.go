package scoring

import (
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
)

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

var failedLogin = regexp.MustCompile(`(?i)Failed password.*?from ([0-9.]+)`)

// FailedLoginsByIP counts "Failed password" lines per source address.
func FailedLoginsByIP(logText string) map[string]int {
	counts := make(map[string]int)
	for _, line := range strings.Split(logText, "\n") {
		if m := failedLogin.FindStringSubmatch(line); m != nil {
			counts[m[1]]++
		}
	}
	return counts
}

// NoisiestIP returns the address with the most failed logins. Ties go
// to the lexically smallest address.
func NoisiestIP(logText string) (string, int) {
	var best string
	bestN := 0
	for ip, n := range FailedLoginsByIP(logText) {
		if n > bestN || (n == bestN && ip < best) {
			best, bestN = ip, n
		}
	}
	return best, bestN
}

// LogHuntAttempt is what the learner submitted for a log-hunt mission.
type LogHuntAttempt struct {
	Count      int    // failed attempts reported
	Mitigation int    // chosen mitigation index, -1 when none
	Report     string // incident note
}

// EvaluateLogHunt scores an attempt against the mission tasks.
func EvaluateLogHunt(t catalog.LogHuntTasks, a LogHuntAttempt) MissionScore {
	return LogHunt(
		a.Count == t.Answer,
		a.Mitigation == t.MitigationIndex,
		CountWords(a.Report),
		t.MinWords,
		t.MaxWords,
	)
}

// EvaluateZoneBuilder scores zone placements keyed by asset name.
func EvaluateZoneBuilder(t catalog.ZoneBuilderTasks, placements map[string]string) MissionScore {
	correct := 0
	for _, a := range t.Assets {
		if placements[a.Name] == a.CorrectZone {
			correct++
		}
	}
	return ZoneBuilder(correct, len(t.Assets))
}

// Outcome is the pass/fail result of the mission types that do not use
// the three-part breakdown.
type Outcome struct {
	Points    int
	MaxPoints int
	Passed    bool
	Score     int // 0–100, recorded as the mission score
	Detail    []string
}

// EvaluateDialogue sums the scores of the chosen option per step. choices
// holds one option index per step; out-of-range choices earn nothing.
func EvaluateDialogue(t catalog.DialogueTasks, choices []int) Outcome {
	points := 0
	var detail []string
	for i, step := range t.Steps {
		if i >= len(choices) {
			break
		}
		c := choices[i]
		if c < 0 || c >= len(step.Options) {
			continue
		}
		points += step.Options[c].Score
		if note := step.Options[c].Note; note != "" {
			detail = append(detail, note)
		}
	}
	best := t.MaxPoints()
	return Outcome{
		Points:    points,
		MaxPoints: best,
		Passed:    points >= t.PassScore,
		Score:     percent(points, best),
		Detail:    detail,
	}
}

// DetectorMinFlagged is how many accounts must be flagged to pass.
const DetectorMinFlagged = 2

// DetectorRow is one account in a detector dataset.
type DetectorRow struct {
	User   string
	Fields map[string]float64
}

// ParseDetectorCSV reads the dataset. Non-numeric cells other than the
// user column are ignored.
func ParseDetectorCSV(data string) ([]DetectorRow, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(data)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse detector dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	head := records[0]
	rows := make([]DetectorRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := DetectorRow{Fields: make(map[string]float64)}
		for i, col := range head {
			if i >= len(rec) {
				break
			}
			if col == "user" {
				row.User = rec[i]
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err == nil {
				row.Fields[col] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FlagAccounts returns the users whose thresholdField exceeds threshold
// and who have fewer than two likes.
func FlagAccounts(rows []DetectorRow, field string, threshold int) []string {
	var flagged []string
	for _, r := range rows {
		if r.Fields[field] > float64(threshold) && r.Fields["likes"] < 2 {
			flagged = append(flagged, r.User)
		}
	}
	return flagged
}

// EvaluateDetector flags accounts at the chosen threshold. Passing needs
// at least DetectorMinFlagged accounts flagged.
func EvaluateDetector(t catalog.DetectorTasks, threshold int) (Outcome, error) {
	rows, err := ParseDetectorCSV(t.DatasetCSV)
	if err != nil {
		return Outcome{}, err
	}
	flagged := FlagAccounts(rows, t.ThresholdField, threshold)
	n := len(flagged)
	capped := n
	if capped > DetectorMinFlagged {
		capped = DetectorMinFlagged
	}
	return Outcome{
		Points:    n,
		MaxPoints: DetectorMinFlagged,
		Passed:    n >= DetectorMinFlagged,
		Score:     percent(capped, DetectorMinFlagged),
		Detail:    flagged,
	}, nil
}

// EvaluatePhishing compares answers case-insensitively. Every answer must
// match to pass; the score is the share of matches.
func EvaluatePhishing(t catalog.PhishingTasks, answers []string) Outcome {
	correct := 0
	for i, q := range t.Questions {
		if i < len(answers) && strings.EqualFold(strings.TrimSpace(answers[i]), q.Answer) {
			correct++
		}
	}
	total := len(t.Questions)
	return Outcome{
		Points:    correct,
		MaxPoints: total,
		Passed:    total > 0 && correct == total,
		Score:     percent(correct, total),
	}
}

func percent(n, of int) int {
	if of <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(of)))
}

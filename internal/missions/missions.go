// Package missions scores mission attempts and records the results.
package missions

import (
	"context"
	"errors"
	"fmt"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
	"github.com/lauralie13/Spy-Academy/internal/scoring"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

var (
	// ErrLocked is returned for missions whose unlocking mission has not
	// been completed.
	ErrLocked = errors.New("mission is locked")

	// ErrUnsupported is returned for mission types this build cannot score.
	ErrUnsupported = errors.New("mission type not supported")
)

// Attempt holds the learner's inputs. Only the field matching the
// mission type is read.
type Attempt struct {
	LogHunt    scoring.LogHuntAttempt
	Placements map[string]string // zone-builder: asset name to zone
	Choices    []int             // dialogue: option index per step
	Threshold  int               // detector
	Answers    []string          // phishing-forensics: one answer per question
}

// Result is a scored and recorded attempt.
type Result struct {
	MissionID string
	Score     int
	Grade     scoring.Grade
	Passed    bool

	// Breakdown is set for mission types scored in three parts.
	Breakdown *scoring.MissionScore
	Detail    []string

	Intel      int
	RankChange *rewards.RankChange

	// Unlocked lists missions that became available with this result.
	Unlocked []catalog.Mission
}

// EventLog records mission results.
type EventLog interface {
	AppendMissionEvent(ctx context.Context, data store.MissionEventData) error
}

// Service scores attempts against the catalog and records them in the
// progress store.
type Service struct {
	progress *progress.Store
	events   EventLog
	log      *logger.Logger
}

// NewService creates a Service. events may be nil.
func NewService(ps *progress.Store, events EventLog, log *logger.Logger) *Service {
	return &Service{progress: ps, events: events, log: logger.OrNop(log)}
}

// Evaluate scores an attempt without recording it.
func Evaluate(m catalog.Mission, a Attempt) (Result, error) {
	res := Result{MissionID: m.ID}
	switch t := m.Tasks.(type) {
	case catalog.LogHuntTasks:
		s := scoring.EvaluateLogHunt(t, a.LogHunt)
		res.setBreakdown(s)
	case catalog.ZoneBuilderTasks:
		s := scoring.EvaluateZoneBuilder(t, a.Placements)
		res.setBreakdown(s)
	case catalog.DialogueTasks:
		res.setOutcome(scoring.EvaluateDialogue(t, a.Choices))
	case catalog.DetectorTasks:
		out, err := scoring.EvaluateDetector(t, a.Threshold)
		if err != nil {
			return Result{}, err
		}
		res.setOutcome(out)
	case catalog.PhishingTasks:
		res.setOutcome(scoring.EvaluatePhishing(t, a.Answers))
	default:
		return Result{}, fmt.Errorf("%s: %w", m.Type, ErrUnsupported)
	}
	return res, nil
}

// passingGrade is the lowest grade that counts as a pass for missions
// scored in three parts.
const passingGrade = 60

func (r *Result) setBreakdown(s scoring.MissionScore) {
	r.Breakdown = &s
	r.Score = s.Total
	r.Grade = s.Grade
	r.Passed = s.Total >= passingGrade
}

func (r *Result) setOutcome(o scoring.Outcome) {
	r.Score = o.Score
	r.Grade = scoring.GradeFor(o.Score)
	r.Passed = o.Passed
	r.Detail = o.Detail
}

// Complete scores an attempt, records the score as the mission result
// and logs it. Every submitted attempt completes the mission; the score
// reflects how well it went.
func (s *Service) Complete(ctx context.Context, missionID string, a Attempt) (Result, error) {
	m, ok := s.progress.Catalog().Mission(missionID)
	if !ok {
		return Result{}, fmt.Errorf("unknown mission %q", missionID)
	}
	if !s.progress.Unlocked(missionID) {
		return Result{}, fmt.Errorf("%s: %w", missionID, ErrLocked)
	}

	res, err := Evaluate(m, a)
	if err != nil {
		return Result{}, err
	}

	before := s.progress.CompletedSet()
	intel, change, _ := s.progress.UpdateMissionResult(missionID, res.Score)
	res.Intel = intel
	res.RankChange = change
	res.Unlocked = newlyUnlocked(s.progress, before)

	if s.events != nil {
		err := s.events.AppendMissionEvent(ctx, store.MissionEventData{
			MissionID:   m.ID,
			MissionType: string(m.Type),
			Score:       res.Score,
			Grade:       string(res.Grade),
			Intel:       intel,
		})
		if err != nil {
			s.log.Warn("failed to log mission event", "mission", m.ID, "error", err)
		}
	}
	s.log.Info("mission completed", "mission", m.ID, "score", res.Score, "grade", res.Grade, "intel", intel)
	return res, nil
}

func newlyUnlocked(ps *progress.Store, before map[string]bool) []catalog.Mission {
	cat := ps.Catalog()
	var out []catalog.Mission
	for _, m := range ps.AvailableMissions() {
		if !cat.IsUnlocked(m.ID, before) {
			out = append(out, m)
		}
	}
	return out
}

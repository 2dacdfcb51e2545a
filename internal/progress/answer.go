package progress

import (
	"time"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/diagnosis"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
	"github.com/lauralie13/Spy-Academy/internal/spacedrep"
)

// AnswerOutcome describes everything one recorded answer changed.
type AnswerOutcome struct {
	QuestionID  string
	ObjectiveID string
	Correct     bool
	Confidence  int

	IntelGained int
	Streak      int // global answer streak after this answer
	RankChange  *rewards.RankChange

	MasteryBefore       float64
	MasteryAfter        float64
	NextDue             time.Time
	HighConfidenceWrong bool
	Transition          *mastery.Transition // nil when the status did not change

	// Diagnosis classifies wrong answers; nil for correct ones.
	Diagnosis *diagnosis.Result
}

// UpdateQuestionResult records the latest answer to a question and
// updates intel, the answer streak and rank. Unknown questions are
// ignored and reported with false.
func (s *Store) UpdateQuestionResult(questionID string, correct bool, confidence int) bool {
	s.mu.Lock()
	if _, ok := s.cat.Question(questionID); !ok {
		s.mu.Unlock()
		return false
	}
	s.updateQuestionResultLocked(questionID, correct, mastery.ClampConfidence(confidence))
	s.commit()
	return true
}

func (s *Store) updateQuestionResultLocked(questionID string, correct bool, confidence int) (int, *rewards.RankChange) {
	s.questionResults[questionID] = QuestionResult{
		QuestionID: questionID,
		Correct:    correct,
		Confidence: confidence,
		Timestamp:  s.now(),
	}
	if correct {
		s.streak++
	} else {
		s.streak = 0
	}
	intel := rewards.QuestionIntel(correct, confidence)
	return intel, s.addIntelLocked(intel)
}

func (s *Store) addIntelLocked(intel int) *rewards.RankChange {
	s.totalIntel += intel
	prev := s.rank
	s.rank = rewards.RankFor(s.totalIntel)
	if s.rank == prev {
		return nil
	}
	return &rewards.RankChange{From: prev, To: s.rank}
}

// ScheduleNext reschedules an objective after an answer: the streak is
// read from the objective's recorded results, then mastery, due date,
// status and the misconception flag are updated. Unknown objectives are
// ignored and reported with false.
func (s *Store) ScheduleNext(objectiveID string, correct bool, confidence int) bool {
	s.mu.Lock()
	i, ok := s.objIdx[objectiveID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.scheduleNextLocked(i, correct, mastery.ClampConfidence(confidence))
	s.commit()
	return true
}

func (s *Store) scheduleNextLocked(i int, correct bool, confidence int) *mastery.Transition {
	obj := &s.objectives[i]
	now := s.now()

	streak := s.objectiveStreakLocked(obj.ID)
	hcw := diagnosis.IsHighConfidenceWrong(correct, confidence)

	obj.NextDue = spacedrep.NextDue(now, correct, streak, hcw)
	obj.Mastery = mastery.Update(obj.Mastery, correct, confidence)
	obj.Misconception = obj.Misconception || hcw

	from := obj.Status
	switch {
	case mastery.ShouldBeMastered(obj.Mastery, streak) && !obj.Misconception:
		obj.Status = mastery.StatusMastered
	case obj.Status == mastery.StatusUnseen:
		obj.Status = mastery.StatusLearning
	}
	if obj.Status == from {
		return nil
	}

	trigger := mastery.TriggerFirstAttempt
	if obj.Status == mastery.StatusMastered {
		trigger = mastery.TriggerMasteryReached
	}
	return &mastery.Transition{
		ObjectiveID: obj.ID,
		Title:       obj.Title,
		From:        from,
		To:          obj.Status,
		Trigger:     trigger,
	}
}

// objectiveStreakLocked counts consecutive correct latest-results across
// the objective's questions, newest first.
func (s *Store) objectiveStreakLocked(objectiveID string) int {
	var answers []spacedrep.Answer
	for _, q := range s.cat.QuestionsForObjective(objectiveID) {
		if r, ok := s.questionResults[q.ID]; ok {
			answers = append(answers, spacedrep.Answer{Correct: r.Correct, At: r.Timestamp})
		}
	}
	return spacedrep.ConsecutiveCorrect(answers)
}

// RecordAnswer records an answer and reschedules the question's
// objective in one step.
func (s *Store) RecordAnswer(questionID string, correct bool, confidence int) (AnswerOutcome, bool) {
	return s.RecordTimedAnswer(questionID, correct, confidence, 0)
}

// RecordTimedAnswer is RecordAnswer with the time the learner took, used
// to tell rushed answers apart when diagnosing a miss.
func (s *Store) RecordTimedAnswer(questionID string, correct bool, confidence int, elapsed time.Duration) (AnswerOutcome, bool) {
	s.mu.Lock()
	q, ok := s.cat.Question(questionID)
	if !ok {
		s.mu.Unlock()
		return AnswerOutcome{}, false
	}
	confidence = mastery.ClampConfidence(confidence)

	out := AnswerOutcome{
		QuestionID:  questionID,
		ObjectiveID: q.ObjectiveID,
		Correct:     correct,
		Confidence:  confidence,
	}
	out.IntelGained, out.RankChange = s.updateQuestionResultLocked(questionID, correct, confidence)
	out.Streak = s.streak

	if i, ok := s.objIdx[q.ObjectiveID]; ok {
		out.MasteryBefore = s.objectives[i].Mastery
		out.Transition = s.scheduleNextLocked(i, correct, confidence)
		out.MasteryAfter = s.objectives[i].Mastery
		out.NextDue = s.objectives[i].NextDue
	}
	out.HighConfidenceWrong = diagnosis.IsHighConfidenceWrong(correct, confidence)

	if !correct {
		out.Diagnosis = diagnosis.Diagnose(&diagnosis.ClassifyInput{
			Confidence:       confidence,
			ResponseTimeMs:   int(elapsed.Milliseconds()),
			ObjectiveMastery: out.MasteryBefore,
		})
	}
	s.commit()
	return out, true
}

// UpdateMissionResult records a completed mission and awards intel for
// its score, clamped to [0,100]. Unknown missions are ignored and
// reported with false.
func (s *Store) UpdateMissionResult(missionID string, score int) (int, *rewards.RankChange, bool) {
	s.mu.Lock()
	if _, ok := s.cat.Mission(missionID); !ok {
		s.mu.Unlock()
		return 0, nil, false
	}
	score = clampScore(score)
	s.missionResults[missionID] = MissionResult{
		MissionID: missionID,
		Score:     score,
		Completed: true,
		Timestamp: s.now(),
	}
	intel := rewards.MissionIntel(float64(score))
	change := s.addIntelLocked(intel)
	s.commit()
	return intel, change, true
}

func clampScore(score int) int {
	return max(0, min(100, score))
}

// Unlocked reports whether a mission is available given the completed
// missions.
func (s *Store) Unlocked(missionID string) bool {
	return s.cat.IsUnlocked(missionID, s.CompletedSet())
}

// AvailableMissions returns the unlocked missions in catalog order.
func (s *Store) AvailableMissions() []catalog.Mission {
	return s.cat.AvailableMissions(s.CompletedSet())
}

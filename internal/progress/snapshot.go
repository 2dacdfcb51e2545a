package progress

import (
	"time"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// Snapshot returns the persistable state.
func (s *Store) Snapshot() store.SnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() store.SnapshotData {
	data := store.SnapshotData{
		Version:         store.SnapshotVersion,
		ContentVersion:  s.cat.Version(),
		Objectives:      make([]store.ObjectiveData, len(s.objectives)),
		QuestionResults: make(map[string]store.QuestionResultData, len(s.questionResults)),
		MissionResults:  make(map[string]store.MissionResultData, len(s.missionResults)),
		EthicsAccepted:  s.settings.EthicsAccepted,
		DyslexiaMode:    s.settings.DyslexiaMode,
		ReduceMotion:    s.settings.ReduceMotion,
		Streak:          s.streak,
		TotalIntel:      s.totalIntel,
		Rank:            string(s.rank),
	}
	for i, o := range s.objectives {
		od := store.ObjectiveData{
			ID:            o.ID,
			Status:        string(o.Status),
			Mastery:       o.Mastery,
			Misconception: o.Misconception,
		}
		if !o.NextDue.IsZero() {
			due := o.NextDue.UTC()
			od.NextDue = &due
		}
		data.Objectives[i] = od
	}
	for id, r := range s.questionResults {
		data.QuestionResults[id] = store.QuestionResultData{
			QuestionID: r.QuestionID,
			Correct:    r.Correct,
			Confidence: r.Confidence,
			Timestamp:  r.Timestamp.UTC(),
		}
	}
	for id, r := range s.missionResults {
		data.MissionResults[id] = store.MissionResultData{
			MissionID: r.MissionID,
			Score:     r.Score,
			Completed: r.Completed,
			Timestamp: r.Timestamp.UTC(),
		}
	}
	return data
}

// RestoreReport says how a snapshot was applied.
type RestoreReport struct {
	Restored        int  // objectives whose state was reapplied
	Added           int  // catalog objectives missing from the snapshot
	Dropped         int  // snapshot objectives no longer in the catalog
	DiscardedStates bool // objective state ignored after a major content change
}

// Restore replaces the store's state with a snapshot. Objectives are
// matched to the catalog by id: catalog objectives missing from the
// snapshot start from their catalog defaults and snapshot objectives the
// catalog no longer has are dropped. When the snapshot was taken against
// a different major content version, objective state is discarded while
// results, settings and stats are kept. Snapshots without a content
// version predate versioning and are treated as current. Restore does
// not notify change hooks.
func (s *Store) Restore(data store.SnapshotData) RestoreReport {
	s.mu.Lock()

	var report RestoreReport
	objs := s.cat.Objectives()
	compatible := data.ContentVersion == "" || catalog.SameMajor(data.ContentVersion, s.cat.Version())
	if compatible {
		saved := make(map[string]store.ObjectiveData, len(data.Objectives))
		for _, od := range data.Objectives {
			saved[od.ID] = od
		}
		for i := range objs {
			od, ok := saved[objs[i].ID]
			if !ok {
				report.Added++
				continue
			}
			delete(saved, objs[i].ID)
			objs[i].Status = mastery.ParseStatus(od.Status)
			objs[i].Mastery = mastery.Clamp(od.Mastery)
			objs[i].Misconception = od.Misconception
			objs[i].NextDue = time.Time{}
			if od.NextDue != nil {
				objs[i].NextDue = *od.NextDue
			}
			report.Restored++
		}
		report.Dropped = len(saved)
	} else {
		report.DiscardedStates = len(data.Objectives) > 0
		report.Added = len(objs)
	}
	s.setObjectivesLocked(objs)

	s.questionResults = make(map[string]QuestionResult, len(data.QuestionResults))
	for id, r := range data.QuestionResults {
		s.questionResults[id] = QuestionResult{
			QuestionID: r.QuestionID,
			Correct:    r.Correct,
			Confidence: mastery.ClampConfidence(r.Confidence),
			Timestamp:  r.Timestamp,
		}
	}
	s.missionResults = make(map[string]MissionResult, len(data.MissionResults))
	for id, r := range data.MissionResults {
		s.missionResults[id] = MissionResult{
			MissionID: r.MissionID,
			Score:     clampScore(r.Score),
			Completed: r.Completed,
			Timestamp: r.Timestamp,
		}
	}
	s.settings = Settings{
		EthicsAccepted: data.EthicsAccepted,
		DyslexiaMode:   data.DyslexiaMode,
		ReduceMotion:   data.ReduceMotion,
	}
	s.streak = max(0, data.Streak)
	s.totalIntel = max(0, data.TotalIntel)
	// Rank is derived; a stored rank that disagrees with intel is ignored.
	s.rank = rewards.RankFor(s.totalIntel)

	s.mu.Unlock()
	return report
}

// Package progress holds the learner's mutable state: objective mastery
// and schedules, answer and mission results, settings and rank. All
// mutations go through a Store, which serializes them with a mutex and
// notifies change hooks with a snapshot after each one.
package progress

import (
	"sort"
	"sync"
	"time"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// QuestionResult is the latest answer to one question.
type QuestionResult struct {
	QuestionID string
	Correct    bool
	Confidence int
	Timestamp  time.Time
}

// MissionResult is the latest result of one mission.
type MissionResult struct {
	MissionID string
	Score     int
	Completed bool
	Timestamp time.Time
}

// Settings are the learner's preference flags.
type Settings struct {
	EthicsAccepted bool
	DyslexiaMode   bool
	ReduceMotion   bool
}

// ChangeFunc receives the state after a mutation.
type ChangeFunc func(store.SnapshotData)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithOnChange registers a hook called after every mutation. Hooks run
// outside the store's lock, on the mutating goroutine, so with concurrent
// mutators they may see snapshots out of order. Each snapshot carries a
// Revision that increases with every mutation; Autosaver uses it to drop
// stale ones.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Store) { s.hooks = append(s.hooks, fn) }
}

// Store is the progress state container. The zero value is not usable;
// construct with New.
type Store struct {
	cat   *catalog.Catalog
	now   func() time.Time
	hooks []ChangeFunc

	mu              sync.Mutex
	objectives      []catalog.Objective
	objIdx          map[string]int
	questionResults map[string]QuestionResult
	missionResults  map[string]MissionResult
	settings        Settings
	streak          int
	totalIntel      int
	rank            rewards.Rank
	rev             uint64
}

// New creates an empty store over cat. Call InitializeData or Restore
// before use.
func New(cat *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		cat: cat,
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.clearLocked()
	return s
}

// Catalog returns the content catalog the store was built over.
func (s *Store) Catalog() *catalog.Catalog { return s.cat }

func (s *Store) clearLocked() {
	s.objectives = nil
	s.objIdx = make(map[string]int)
	s.questionResults = make(map[string]QuestionResult)
	s.missionResults = make(map[string]MissionResult)
	s.settings = Settings{}
	s.streak = 0
	s.totalIntel = 0
	s.rank = rewards.RankCadet
}

func (s *Store) setObjectivesLocked(objs []catalog.Objective) {
	s.objectives = objs
	s.objIdx = make(map[string]int, len(objs))
	for i, o := range objs {
		s.objIdx[o.ID] = i
	}
}

// commit takes a snapshot under the lock, releases it and notifies hooks.
// Callers must hold s.mu.
func (s *Store) commit() {
	if len(s.hooks) == 0 {
		s.mu.Unlock()
		return
	}
	s.rev++
	snap := s.snapshotLocked()
	snap.Revision = s.rev
	s.mu.Unlock()
	for _, h := range s.hooks {
		h(snap)
	}
}

// InitializeData loads the catalog objectives if none are loaded yet.
// Repeat calls are no-ops.
func (s *Store) InitializeData() {
	s.mu.Lock()
	if len(s.objectives) > 0 {
		s.mu.Unlock()
		return
	}
	s.setObjectivesLocked(s.cat.Objectives())
	s.commit()
}

// Objectives returns a copy of every objective in catalog order.
func (s *Store) Objectives() []catalog.Objective {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Objective, len(s.objectives))
	copy(out, s.objectives)
	return out
}

// Objective returns the current state of one objective.
func (s *Store) Objective(id string) (catalog.Objective, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.objIdx[id]
	if !ok {
		return catalog.Objective{}, false
	}
	return s.objectives[i], true
}

// QuestionResult returns the latest answer to a question.
func (s *Store) QuestionResult(questionID string) (QuestionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.questionResults[questionID]
	return r, ok
}

// MissionResult returns the latest result of a mission.
func (s *Store) MissionResult(missionID string) (MissionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.missionResults[missionID]
	return r, ok
}

// DueObjectives returns the objectives that are scheduled and due now,
// in catalog order.
func (s *Store) DueObjectives() []catalog.Objective {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var due []catalog.Objective
	for _, o := range s.objectives {
		if o.IsDue(now) {
			due = append(due, o)
		}
	}
	return due
}

// CompletedMissions returns the ids of completed missions, sorted.
func (s *Store) CompletedMissions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, r := range s.missionResults {
		if r.Completed {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// CompletedSet returns the completed mission ids as a set, the form the
// catalog's unlock checks take.
func (s *Store) CompletedSet() map[string]bool {
	set := make(map[string]bool)
	for _, id := range s.CompletedMissions() {
		set[id] = true
	}
	return set
}

// Settings returns the preference flags.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// MarkEthicsAccepted records that the learner accepted the ethics pledge.
func (s *Store) MarkEthicsAccepted() {
	s.mu.Lock()
	s.settings.EthicsAccepted = true
	s.commit()
}

// ToggleDyslexiaMode flips the dyslexia-friendly display flag.
func (s *Store) ToggleDyslexiaMode() {
	s.mu.Lock()
	s.settings.DyslexiaMode = !s.settings.DyslexiaMode
	s.commit()
}

// ToggleReduceMotion flips the reduced-animation flag.
func (s *Store) ToggleReduceMotion() {
	s.mu.Lock()
	s.settings.ReduceMotion = !s.settings.ReduceMotion
	s.commit()
}

// Reset clears all mutable state, objectives included. Call
// InitializeData afterwards to start over from the catalog defaults.
func (s *Store) Reset() {
	s.mu.Lock()
	s.clearLocked()
	s.commit()
}

// ClearMisconception resolves an objective's misconception flag. The
// answer path never clears it.
func (s *Store) ClearMisconception(objectiveID string) bool {
	s.mu.Lock()
	i, ok := s.objIdx[objectiveID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.objectives[i].Misconception = false
	s.commit()
	return true
}

// ApplyPlacement replaces objective state with placement-seeded values,
// matched by id. Objectives absent from seeded keep their state; unknown
// ids are ignored. The misconception flag is kept if already set. It
// returns the status transitions it caused.
func (s *Store) ApplyPlacement(seeded []catalog.Objective) []mastery.Transition {
	s.mu.Lock()
	if len(s.objectives) == 0 {
		s.setObjectivesLocked(s.cat.Objectives())
	}
	var transitions []mastery.Transition
	for _, o := range seeded {
		i, ok := s.objIdx[o.ID]
		if !ok {
			continue
		}
		cur := &s.objectives[i]
		if cur.Status != o.Status {
			transitions = append(transitions, mastery.Transition{
				ObjectiveID: cur.ID,
				Title:       cur.Title,
				From:        cur.Status,
				To:          o.Status,
				Trigger:     mastery.TriggerPlacement,
			})
		}
		cur.Status = o.Status
		cur.Mastery = mastery.Clamp(o.Mastery)
		cur.NextDue = o.NextDue
		cur.Misconception = cur.Misconception || o.Misconception
	}
	s.commit()
	return transitions
}

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/diagnosis"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, opts ...Option) (*Store, *fakeClock) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	clk := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	s := New(cat, append([]Option{WithClock(clk.Now)}, opts...)...)
	s.InitializeData()
	return s, clk
}

func TestInitializeData_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	require.Len(t, s.Objectives(), 8)

	require.True(t, s.ScheduleNext("net-ports", true, 80))
	s.InitializeData()

	o, ok := s.Objective("net-ports")
	require.True(t, ok)
	assert.Equal(t, mastery.StatusLearning, o.Status, "second InitializeData must not reload")
}

func TestUpdateQuestionResult(t *testing.T) {
	s, _ := newTestStore(t)

	require.True(t, s.UpdateQuestionResult("q-net-1", true, 80))
	st := s.Stats()
	assert.Equal(t, 18, st.TotalIntel)
	assert.Equal(t, 1, st.Streak)

	require.True(t, s.UpdateQuestionResult("q-net-2", true, 35))
	st = s.Stats()
	assert.Equal(t, 18+14, st.TotalIntel)
	assert.Equal(t, 2, st.Streak)

	require.True(t, s.UpdateQuestionResult("q-net-2", false, 90))
	st = s.Stats()
	assert.Equal(t, 18+14+5, st.TotalIntel)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, 2, st.Answered, "results are a last-answer cache")

	r, ok := s.QuestionResult("q-net-2")
	require.True(t, ok)
	assert.False(t, r.Correct)
	assert.Equal(t, 90, r.Confidence)
}

func TestUpdateQuestionResult_ClampsConfidence(t *testing.T) {
	s, _ := newTestStore(t)
	require.True(t, s.UpdateQuestionResult("q-net-1", true, 250))
	r, _ := s.QuestionResult("q-net-1")
	assert.Equal(t, 100, r.Confidence)
	assert.Equal(t, 20, s.Stats().TotalIntel)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Snapshot()

	assert.False(t, s.UpdateQuestionResult("nope", true, 50))
	assert.False(t, s.ScheduleNext("nope", true, 50))
	assert.False(t, s.ClearMisconception("nope"))
	_, ok := s.RecordAnswer("nope", true, 50)
	assert.False(t, ok)
	_, _, ok = s.UpdateMissionResult("nope", 80)
	assert.False(t, ok)

	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateMissionResult_RankAndClamp(t *testing.T) {
	s, _ := newTestStore(t)

	var change *rewards.RankChange
	for i := 0; i < 5; i++ {
		intel, c, ok := s.UpdateMissionResult("m-loghunt-1", 150)
		require.True(t, ok)
		assert.Equal(t, 200, intel)
		if c != nil {
			change = c
		}
	}
	require.NotNil(t, change)
	assert.Equal(t, rewards.RankCadet, change.From)
	assert.Equal(t, rewards.RankAgent, change.To)
	assert.Equal(t, 1000, s.Stats().TotalIntel)

	r, ok := s.MissionResult("m-loghunt-1")
	require.True(t, ok)
	assert.Equal(t, 100, r.Score)
	assert.True(t, r.Completed)

	intel, _, _ := s.UpdateMissionResult("m-zones-1", -20)
	assert.Zero(t, intel)
	assert.Equal(t, []string{"m-loghunt-1", "m-zones-1"}, s.CompletedMissions())
}

func TestAvailableMissionsFollowUnlocks(t *testing.T) {
	s, _ := newTestStore(t)
	assert.True(t, s.Unlocked("m-loghunt-1"))
	assert.False(t, s.Unlocked("m-zones-1"))

	s.UpdateMissionResult("m-loghunt-1", 70)
	assert.True(t, s.Unlocked("m-zones-1"))

	var ids []string
	for _, m := range s.AvailableMissions() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m-loghunt-1", "m-zones-1"}, ids)
}

func TestRecordAnswer_FirstAttempt(t *testing.T) {
	s, clk := newTestStore(t)

	out, ok := s.RecordAnswer("q-net-1", true, 80)
	require.True(t, ok)
	assert.Equal(t, "net-ports", out.ObjectiveID)
	assert.Equal(t, 18, out.IntelGained)
	assert.Equal(t, 0.0, out.MasteryBefore)
	assert.Equal(t, 13.0, out.MasteryAfter)
	assert.True(t, clk.Now().Add(3*24*time.Hour).Equal(out.NextDue))
	assert.Nil(t, out.Diagnosis)
	require.NotNil(t, out.Transition)
	assert.Equal(t, mastery.StatusUnseen, out.Transition.From)
	assert.Equal(t, mastery.StatusLearning, out.Transition.To)
	assert.Equal(t, mastery.TriggerFirstAttempt, out.Transition.Trigger)

	o, _ := s.Objective("net-ports")
	assert.Equal(t, mastery.StatusLearning, o.Status)
	assert.False(t, o.IsDue(clk.Now()))
}

func TestRecordAnswer_ReachesMastery(t *testing.T) {
	s, clk := newTestStore(t)
	s.ApplyPlacement([]catalog.Objective{{ID: "net-ports", Status: mastery.StatusLearning, Mastery: 75}})

	out, _ := s.RecordAnswer("q-net-1", true, 100)
	assert.Equal(t, 90.0, out.MasteryAfter)
	assert.Nil(t, out.Transition, "streak of one is not enough")

	clk.Advance(time.Minute)
	out, _ = s.RecordAnswer("q-net-2", true, 100)
	assert.Equal(t, 100.0, out.MasteryAfter)
	require.NotNil(t, out.Transition)
	assert.Equal(t, mastery.StatusMastered, out.Transition.To)
	assert.Equal(t, mastery.TriggerMasteryReached, out.Transition.Trigger)
	assert.True(t, clk.Now().Add(7*24*time.Hour).Equal(out.NextDue))
}

func TestRecordAnswer_StreakUsesLatestResults(t *testing.T) {
	s, clk := newTestStore(t)
	s.ApplyPlacement([]catalog.Objective{{ID: "threat-phishing", Status: mastery.StatusLearning, Mastery: 95}})

	// correct, wrong, correct across the objective's three questions.
	s.RecordAnswer("q-thr-1", true, 40)
	clk.Advance(time.Minute)
	s.RecordAnswer("q-thr-2", false, 40)
	clk.Advance(time.Minute)
	out, _ := s.RecordAnswer("q-thr-3", true, 40)
	assert.True(t, clk.Now().Add(3*24*time.Hour).Equal(out.NextDue), "streak 1 after the miss")

	// Answering q-thr-2 again overwrites the miss.
	clk.Advance(time.Minute)
	out, _ = s.RecordAnswer("q-thr-2", true, 40)
	assert.True(t, clk.Now().Add(14*24*time.Hour).Equal(out.NextDue), "streak 3")
	o, _ := s.Objective("threat-phishing")
	assert.Equal(t, mastery.StatusMastered, o.Status)
}

func TestRecordAnswer_MisconceptionIsSticky(t *testing.T) {
	s, clk := newTestStore(t)
	s.ApplyPlacement([]catalog.Objective{{ID: "iam-mfa", Status: mastery.StatusLearning, Mastery: 90}})

	out, _ := s.RecordAnswer("q-iam-1", false, 90)
	assert.True(t, out.HighConfidenceWrong)
	assert.Equal(t, 86.5, out.MasteryAfter)
	assert.True(t, clk.Now().Add(24*time.Hour).Equal(out.NextDue))
	require.NotNil(t, out.Diagnosis)
	assert.Equal(t, diagnosis.CategoryMisconception, out.Diagnosis.Category)

	clk.Advance(time.Minute)
	s.RecordAnswer("q-iam-1", true, 100)
	clk.Advance(time.Minute)
	s.RecordAnswer("q-iam-2", true, 100)

	o, _ := s.Objective("iam-mfa")
	assert.True(t, o.Misconception)
	assert.Equal(t, mastery.StatusLearning, o.Status, "flag blocks mastery")

	require.True(t, s.ClearMisconception("iam-mfa"))
	clk.Advance(time.Minute)
	s.RecordAnswer("q-iam-1", true, 100)
	o, _ = s.Objective("iam-mfa")
	assert.False(t, o.Misconception)
	assert.Equal(t, mastery.StatusMastered, o.Status)
}

func TestRecordTimedAnswer_DiagnosesRush(t *testing.T) {
	s, _ := newTestStore(t)
	out, _ := s.RecordTimedAnswer("q-ops-1", false, 50, 800*time.Millisecond)
	require.NotNil(t, out.Diagnosis)
	assert.Equal(t, diagnosis.CategorySpeedRush, out.Diagnosis.Category)
	assert.False(t, out.HighConfidenceWrong)
}

func TestMasteryStaysInRange(t *testing.T) {
	s, clk := newTestStore(t)
	for i := 0; i < 20; i++ {
		clk.Advance(time.Minute)
		s.RecordAnswer("q-ops-3", i%3 != 0, (i*37)%101)
		o, _ := s.Objective("ops-incident")
		assert.GreaterOrEqual(t, o.Mastery, 0.0)
		assert.LessOrEqual(t, o.Mastery, 100.0)
		assert.False(t, o.NextDue.Before(clk.Now()))
	}
}

func TestApplyPlacementAndDue(t *testing.T) {
	s, clk := newTestStore(t)
	seeded := s.Objectives()
	for i := range seeded {
		seeded[i].Status = mastery.StatusLearning
		seeded[i].NextDue = clk.Now()
	}
	seeded[0].Status = mastery.StatusMastered
	seeded[0].Mastery = 100
	seeded[0].NextDue = clk.Now().Add(7 * 24 * time.Hour)

	transitions := s.ApplyPlacement(seeded)
	require.Len(t, transitions, 8)
	assert.Equal(t, mastery.TriggerPlacement, transitions[0].Trigger)
	assert.Len(t, s.DueObjectives(), 7)

	clk.Advance(8 * 24 * time.Hour)
	assert.Len(t, s.DueObjectives(), 8)
}

func TestApplyPlacementKeepsMisconception(t *testing.T) {
	s, _ := newTestStore(t)
	s.RecordAnswer("q-net-1", false, 95)
	s.ApplyPlacement([]catalog.Objective{{ID: "net-ports", Status: mastery.StatusLearning, Mastery: 50}})
	o, _ := s.Objective("net-ports")
	assert.True(t, o.Misconception)
	assert.Equal(t, 50.0, o.Mastery)
}

func TestSettingsAndReset(t *testing.T) {
	s, _ := newTestStore(t)
	s.MarkEthicsAccepted()
	s.ToggleDyslexiaMode()
	s.ToggleReduceMotion()
	s.ToggleReduceMotion()
	assert.Equal(t, Settings{EthicsAccepted: true, DyslexiaMode: true}, s.Settings())

	s.RecordAnswer("q-net-1", true, 50)
	s.UpdateMissionResult("m-loghunt-1", 90)
	s.Reset()

	assert.Equal(t, Settings{}, s.Settings())
	assert.Empty(t, s.Objectives())
	st := s.Stats()
	assert.Zero(t, st.TotalIntel)
	assert.Zero(t, st.Answered)
	assert.Equal(t, rewards.RankCadet, st.Rank)
	assert.Empty(t, s.CompletedMissions())

	s.InitializeData()
	assert.Len(t, s.Objectives(), 8)
}

func TestHooksRunOutsideLock(t *testing.T) {
	var calls int
	var last store.SnapshotData
	var s *Store
	s, _ = newTestStore(t, WithOnChange(func(d store.SnapshotData) {
		calls++
		last = d
		if s != nil {
			_ = s.Stats() // would deadlock if called under the lock
		}
	}))
	calls = 0

	s.RecordAnswer("q-net-1", true, 60)
	s.UpdateQuestionResult("nope", true, 60)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 16, last.TotalIntel)
}

func TestHookSnapshotsCarryIncreasingRevision(t *testing.T) {
	var revs []uint64
	s, _ := newTestStore(t, WithOnChange(func(d store.SnapshotData) {
		revs = append(revs, d.Revision)
	}))
	revs = nil

	s.RecordAnswer("q-net-1", true, 60)
	s.MarkEthicsAccepted()
	require.Len(t, revs, 2)
	assert.Less(t, revs[0], revs[1])
	assert.Zero(t, s.Snapshot().Revision)
}

func TestStatsAndDomainHeat(t *testing.T) {
	s, clk := newTestStore(t)
	s.RecordAnswer("q-net-1", true, 80)
	clk.Advance(time.Minute)
	s.RecordAnswer("q-ops-1", false, 95)
	s.UpdateMissionResult("m-loghunt-1", 50)

	st := s.Stats()
	assert.Equal(t, 2, st.Answered)
	assert.Equal(t, 1, st.Correct)
	assert.InDelta(t, 0.5, st.Accuracy(), 1e-9)
	assert.Equal(t, 1, st.MissionsCompleted)
	assert.Equal(t, 2, st.Learning)
	assert.Equal(t, 6, st.Unseen)
	assert.Equal(t, 1, st.Flagged)
	assert.Equal(t, rewards.RankAgent, st.NextRank)
	assert.InDelta(t, float64(18+5+100)/1000, st.RankProgress, 1e-9)

	heat := s.DomainHeat()
	require.Len(t, heat, 4)
	assert.Equal(t, "Network Security", heat[0].Domain)
	assert.Equal(t, 2, heat[0].Total)
	assert.Equal(t, 1, heat[0].Learning)
	assert.InDelta(t, 6.5, heat[0].Mastery, 1e-9)
	assert.Equal(t, "Security Operations", heat[3].Domain)
	assert.Zero(t, heat[3].Mastery, "a miss from zero stays at zero")
}

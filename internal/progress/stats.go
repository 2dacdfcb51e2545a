package progress

import (
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/rewards"
)

// Stats is the summary shown in the stats bar and the stats command.
type Stats struct {
	Streak       int
	TotalIntel   int
	Rank         rewards.Rank
	NextRank     rewards.Rank // equal to Rank at the top of the ladder
	RankProgress float64      // fraction of the way to NextRank

	Answered          int
	Correct           int
	MissionsCompleted int

	Unseen   int
	Learning int
	Mastered int
	Due      int
	Flagged  int // objectives with a misconception
}

// Accuracy is the share of latest answers that were correct.
func (st Stats) Accuracy() float64 {
	if st.Answered == 0 {
		return 0
	}
	return float64(st.Correct) / float64(st.Answered)
}

// Stats computes the current summary.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _ := s.rank.Next()
	st := Stats{
		Streak:       s.streak,
		TotalIntel:   s.totalIntel,
		Rank:         s.rank,
		NextRank:     next,
		RankProgress: rewards.Progress(s.totalIntel),
		Answered:     len(s.questionResults),
	}
	for _, r := range s.questionResults {
		if r.Correct {
			st.Correct++
		}
	}
	for _, r := range s.missionResults {
		if r.Completed {
			st.MissionsCompleted++
		}
	}

	now := s.now()
	for _, o := range s.objectives {
		switch o.Status {
		case mastery.StatusMastered:
			st.Mastered++
		case mastery.StatusLearning:
			st.Learning++
		default:
			st.Unseen++
		}
		if o.IsDue(now) {
			st.Due++
		}
		if o.Misconception {
			st.Flagged++
		}
	}
	return st
}

// DomainHeat is one cell of the mastery heatmap.
type DomainHeat struct {
	Domain   string
	Mastery  float64 // average objective mastery
	Total    int
	Unseen   int
	Learning int
	Mastered int
}

// DomainHeat returns per-domain mastery in order of first appearance
// among the objectives.
func (s *Store) DomainHeat() []DomainHeat {
	s.mu.Lock()
	defer s.mu.Unlock()

	var heat []DomainHeat
	idx := make(map[string]int)
	for _, o := range s.objectives {
		i, ok := idx[o.Domain]
		if !ok {
			i = len(heat)
			idx[o.Domain] = i
			heat = append(heat, DomainHeat{Domain: o.Domain})
		}
		h := &heat[i]
		h.Total++
		h.Mastery += o.Mastery
		switch o.Status {
		case mastery.StatusMastered:
			h.Mastered++
		case mastery.StatusLearning:
			h.Learning++
		default:
			h.Unseen++
		}
	}
	for i := range heat {
		heat[i].Mastery /= float64(heat[i].Total)
	}
	return heat
}

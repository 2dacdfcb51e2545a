// Package rewards computes intel points and the rank ladder.
package rewards

// Rank is the learner's title, derived from total intel.
type Rank string

const (
	RankCadet    Rank = "Cadet"
	RankAgent    Rank = "Agent"
	RankAnalyst  Rank = "Analyst"
	RankOperator Rank = "Operator"
)

// Intel thresholds for each rank above Cadet.
const (
	AgentThreshold    = 1000
	AnalystThreshold  = 5000
	OperatorThreshold = 10000
)

// AllRanks returns all ranks in order from lowest to highest.
func AllRanks() []Rank {
	return []Rank{RankCadet, RankAgent, RankAnalyst, RankOperator}
}

// RankFor returns the rank earned by a total intel score.
func RankFor(totalIntel int) Rank {
	switch {
	case totalIntel >= OperatorThreshold:
		return RankOperator
	case totalIntel >= AnalystThreshold:
		return RankAnalyst
	case totalIntel >= AgentThreshold:
		return RankAgent
	default:
		return RankCadet
	}
}

// ParseRank converts a stored rank name, falling back to Cadet.
func ParseRank(s string) Rank {
	for _, r := range AllRanks() {
		if string(r) == s {
			return r
		}
	}
	return RankCadet
}

// Threshold returns the intel needed to hold r.
func (r Rank) Threshold() int {
	switch r {
	case RankAgent:
		return AgentThreshold
	case RankAnalyst:
		return AnalystThreshold
	case RankOperator:
		return OperatorThreshold
	default:
		return 0
	}
}

// Next returns the rank above r, or false when r is the top rank.
func (r Rank) Next() (Rank, bool) {
	ranks := AllRanks()
	for i, cur := range ranks {
		if cur == r && i+1 < len(ranks) {
			return ranks[i+1], true
		}
	}
	return r, false
}

// Progress returns how far totalIntel is between the current rank and the
// next one, as a fraction in [0,1]. The top rank always reports 1.
func Progress(totalIntel int) float64 {
	cur := RankFor(totalIntel)
	next, ok := cur.Next()
	if !ok {
		return 1
	}
	span := next.Threshold() - cur.Threshold()
	return float64(totalIntel-cur.Threshold()) / float64(span)
}

// RankChange records a promotion for display and event logging.
type RankChange struct {
	From Rank
	To   Rank
}

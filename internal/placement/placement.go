// Package placement turns a diagnostic quiz into per-domain profiles and
// seeds the initial objective state from them.
package placement

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

// QuestionsPerDomain is the most questions the quiz draws from one domain.
const QuestionsPerDomain = 3

// Seeding bands.
const (
	MasteredBand = 80.0
	LearningBand = 30.0

	MasteredReviewIn = 7 * 24 * time.Hour
	LearningReviewIn = time.Hour
)

// Response is one answered placement question.
type Response struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Confidence int    `json:"confidence"`
}

// DomainProfile summarizes the placement responses for one domain.
type DomainProfile struct {
	Domain     string  `json:"domain"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Confidence float64 `json:"confidence"` // average self-reported confidence
	Mastery    float64 `json:"mastery"`    // 100 * correct / total
}

// ComputeDomainProfile returns one profile per catalog domain, in catalog
// order. Domains without responses get a zero profile. Responses for
// questions the catalog does not know are ignored.
func ComputeDomainProfile(cat *catalog.Catalog, responses []Response) []DomainProfile {
	domains := cat.Domains()
	idx := make(map[string]int, len(domains))
	profiles := make([]DomainProfile, len(domains))
	confSum := make([]int, len(domains))
	for i, d := range domains {
		idx[d] = i
		profiles[i].Domain = d
	}

	for _, r := range responses {
		q, ok := cat.Question(r.QuestionID)
		if !ok {
			continue
		}
		i, ok := idx[q.Domain]
		if !ok {
			continue
		}
		profiles[i].Total++
		if r.Correct {
			profiles[i].Correct++
		}
		confSum[i] += mastery.ClampConfidence(r.Confidence)
	}

	for i := range profiles {
		p := &profiles[i]
		if p.Total == 0 {
			continue
		}
		p.Confidence = float64(confSum[i]) / float64(p.Total)
		p.Mastery = 100 * float64(p.Correct) / float64(p.Total)
	}
	return profiles
}

// GenerateQuiz draws up to QuestionsPerDomain random questions from every
// domain and shuffles the combined list. A nil rng uses the process-wide
// random source.
func GenerateQuiz(cat *catalog.Catalog, rng *rand.Rand) []string {
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}

	var ids []string
	for _, d := range cat.Domains() {
		qs := cat.QuestionsInDomain(d)
		shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
		n := min(QuestionsPerDomain, len(qs))
		for _, q := range qs[:n] {
			ids = append(ids, q.ID)
		}
	}
	shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids
}

// SeedObjectives returns every catalog objective with mastery, status and
// due date taken from its domain's profile. Objectives whose domain has
// no profile are treated as mastery 0.
func SeedObjectives(cat *catalog.Catalog, profiles []DomainProfile, now time.Time) []catalog.Objective {
	byDomain := make(map[string]float64, len(profiles))
	for _, p := range profiles {
		byDomain[p.Domain] = p.Mastery
	}

	objs := cat.Objectives()
	for i := range objs {
		m := mastery.Clamp(byDomain[objs[i].Domain])
		objs[i].Mastery = m
		switch {
		case m >= MasteredBand:
			objs[i].Status = mastery.StatusMastered
			objs[i].NextDue = now.Add(MasteredReviewIn)
		case m >= LearningBand:
			objs[i].Status = mastery.StatusLearning
			objs[i].NextDue = now.Add(LearningReviewIn)
		default:
			objs[i].Status = mastery.StatusLearning
			objs[i].NextDue = now
		}
	}
	return objs
}

// RankWeakest returns a copy of profiles ordered by ascending mastery.
// Ties keep domain name order.
func RankWeakest(profiles []DomainProfile) []DomainProfile {
	out := append([]DomainProfile(nil), profiles...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mastery != out[j].Mastery {
			return out[i].Mastery < out[j].Mastery
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}

// RecommendedDomain is the weakest domain that received any responses.
func RecommendedDomain(profiles []DomainProfile) (string, bool) {
	for _, p := range RankWeakest(profiles) {
		if p.Total > 0 {
			return p.Domain, true
		}
	}
	return "", false
}

package placement

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// twoDomainCatalog has domain A with 2 questions and domain B with 5.
func twoDomainCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	objs := []catalog.Objective{
		{ID: "a-1", Domain: "A", Title: "A one", Weight: 1},
		{ID: "b-1", Domain: "B", Title: "B one", Weight: 1},
		{ID: "b-2", Domain: "B", Title: "B two", Weight: 1},
	}
	q := func(id, obj, domain string) catalog.Question {
		return catalog.Question{ID: id, ObjectiveID: obj, Domain: domain, Stem: id, Options: []string{"x", "y"}, AnswerIndex: 0}
	}
	qs := []catalog.Question{
		q("a1", "a-1", "A"), q("a2", "a-1", "A"),
		q("b1", "b-1", "B"), q("b2", "b-1", "B"), q("b3", "b-2", "B"), q("b4", "b-2", "B"), q("b5", "b-2", "B"),
	}
	cat, err := catalog.New(catalog.Manifest{Name: "test", Version: "v1.0.0"}, objs, qs, nil, nil)
	require.NoError(t, err)
	return cat
}

func mustQuestion(t *testing.T, cat *catalog.Catalog, id string) catalog.Question {
	t.Helper()
	q, ok := cat.Question(id)
	require.True(t, ok, "unknown question %s", id)
	return q
}

func TestComputeDomainProfile(t *testing.T) {
	cat := twoDomainCatalog(t)
	profiles := ComputeDomainProfile(cat, []Response{
		{QuestionID: "b1", Correct: true, Confidence: 80},
		{QuestionID: "b2", Correct: false, Confidence: 40},
		{QuestionID: "b3", Correct: true, Confidence: 90},
		{QuestionID: "b4", Correct: true, Confidence: 50},
		{QuestionID: "zz", Correct: true, Confidence: 100},
	})

	require.Len(t, profiles, 2)
	assert.Equal(t, DomainProfile{Domain: "A"}, profiles[0])

	b := profiles[1]
	assert.Equal(t, "B", b.Domain)
	assert.Equal(t, 3, b.Correct)
	assert.Equal(t, 4, b.Total)
	assert.InDelta(t, 65.0, b.Confidence, 1e-9)
	assert.InDelta(t, 75.0, b.Mastery, 1e-9)
}

func TestComputeDomainProfile_Empty(t *testing.T) {
	cat := twoDomainCatalog(t)
	for _, p := range ComputeDomainProfile(cat, nil) {
		assert.Zero(t, p.Total)
		assert.Zero(t, p.Mastery)
		assert.Zero(t, p.Confidence)
	}
}

func TestGenerateQuiz_PerDomainCounts(t *testing.T) {
	cat := twoDomainCatalog(t)
	for seed := uint64(0); seed < 20; seed++ {
		ids := GenerateQuiz(cat, rand.New(rand.NewPCG(seed, seed+1)))
		require.Len(t, ids, 5)

		perDomain := map[string]int{}
		seen := map[string]bool{}
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate question %s", id)
			seen[id] = true
			perDomain[mustQuestion(t, cat, id).Domain]++
		}
		assert.Equal(t, 2, perDomain["A"])
		assert.Equal(t, 3, perDomain["B"])
	}
}

func TestGenerateQuiz_SeededIsReproducible(t *testing.T) {
	cat := twoDomainCatalog(t)
	a := GenerateQuiz(cat, rand.New(rand.NewPCG(7, 7)))
	b := GenerateQuiz(cat, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func TestGenerateQuiz_NilRNG(t *testing.T) {
	cat := twoDomainCatalog(t)
	assert.Len(t, GenerateQuiz(cat, nil), 5)
}

func TestSeedObjectives_Bands(t *testing.T) {
	cat := twoDomainCatalog(t)
	tests := []struct {
		name       string
		mastery    float64
		wantStatus mastery.Status
		wantDue    time.Time
	}{
		{"strong", 80, mastery.StatusMastered, now.Add(7 * 24 * time.Hour)},
		{"middle", 30, mastery.StatusLearning, now.Add(time.Hour)},
		{"just under", 79.9, mastery.StatusLearning, now.Add(time.Hour)},
		{"weak", 29.9, mastery.StatusLearning, now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs := SeedObjectives(cat, []DomainProfile{{Domain: "A", Mastery: tt.mastery, Total: 1}}, now)
			require.Len(t, objs, 3)
			assert.Equal(t, "a-1", objs[0].ID)
			assert.Equal(t, tt.wantStatus, objs[0].Status)
			assert.Equal(t, tt.mastery, objs[0].Mastery)
			assert.True(t, tt.wantDue.Equal(objs[0].NextDue))
		})
	}
}

func TestSeedObjectives_MissingProfileIsWeak(t *testing.T) {
	cat := twoDomainCatalog(t)
	objs := SeedObjectives(cat, nil, now)
	for _, o := range objs {
		assert.Equal(t, mastery.StatusLearning, o.Status)
		assert.Zero(t, o.Mastery)
		assert.True(t, o.IsDue(now))
	}
}

func TestRankWeakest(t *testing.T) {
	profiles := []DomainProfile{
		{Domain: "C", Mastery: 50, Total: 2},
		{Domain: "A", Mastery: 100, Total: 1},
		{Domain: "B", Mastery: 50, Total: 2},
		{Domain: "D", Mastery: 0},
	}
	ranked := RankWeakest(profiles)
	var order []string
	for _, p := range ranked {
		order = append(order, p.Domain)
	}
	assert.Equal(t, []string{"D", "B", "C", "A"}, order)
	assert.Equal(t, "C", profiles[0].Domain, "input must not be reordered")

	d, ok := RecommendedDomain(profiles)
	require.True(t, ok)
	assert.Equal(t, "B", d)

	_, ok = RecommendedDomain([]DomainProfile{{Domain: "X"}})
	assert.False(t, ok)
}

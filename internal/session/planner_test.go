package session

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/placement"
)

var epoch = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testCatalog has six objectives (o1–o3 in domain A, o4–o6 in B), each
// with three questions whose first option is correct.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var objs []catalog.Objective
	var qs []catalog.Question
	for i := 1; i <= 6; i++ {
		domain := "A"
		if i > 3 {
			domain = "B"
		}
		oid := fmt.Sprintf("o%d", i)
		objs = append(objs, catalog.Objective{ID: oid, Domain: domain, Title: "Objective " + oid, Weight: 1})
		for j := 1; j <= 3; j++ {
			qs = append(qs, catalog.Question{
				ID:          fmt.Sprintf("%s-q%d", oid, j),
				ObjectiveID: oid,
				Domain:      domain,
				Stem:        "stem",
				Options:     []string{"right", "wrong"},
				AnswerIndex: 0,
			})
		}
	}
	cat, err := catalog.New(catalog.Manifest{Name: "test", Version: "v1.0.0"}, objs, qs, nil, nil)
	require.NoError(t, err)
	return cat
}

func dueObjectives(cat *catalog.Catalog, overdue ...time.Duration) []catalog.Objective {
	objs := cat.Objectives()[:len(overdue)]
	for i := range objs {
		objs[i].NextDue = epoch.Add(-overdue[i])
	}
	return objs
}

func mustQuestion(t *testing.T, cat *catalog.Catalog, id string) catalog.Question {
	t.Helper()
	q, ok := cat.Question(id)
	require.True(t, ok, "unknown question %s", id)
	return q
}

func TestBuildDrill_MostOverdueFirstAndCapped(t *testing.T) {
	cat := testCatalog(t)
	// o6 is the least overdue and falls outside the first five.
	due := dueObjectives(cat, 5*time.Hour, 6*time.Hour, 2*time.Hour, 4*time.Hour, 3*time.Hour, time.Hour)

	plan, err := BuildDrill(cat, due, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, KindDrill, plan.Kind)
	require.Len(t, plan.QuestionIDs, MaxDrillQuestions)

	var order []string
	perObjective := map[string]int{}
	for _, id := range plan.QuestionIDs {
		q := mustQuestion(t, cat, id)
		if perObjective[q.ObjectiveID] == 0 {
			order = append(order, q.ObjectiveID)
		}
		perObjective[q.ObjectiveID]++
	}
	assert.Equal(t, []string{"o2", "o1", "o4", "o5", "o3"}, order)
	for oid, n := range perObjective {
		assert.Equal(t, DrillQuestionsPerObjective, n, oid)
	}
	assert.NotContains(t, perObjective, "o6")
}

func TestBuildDrill_TiesKeepInputOrder(t *testing.T) {
	cat := testCatalog(t)
	due := dueObjectives(cat, time.Hour, time.Hour)

	plan, err := BuildDrill(cat, due, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	require.Len(t, plan.QuestionIDs, 4)
	assert.Equal(t, "o1", mustQuestion(t, cat, plan.QuestionIDs[0]).ObjectiveID)
	assert.Equal(t, "o2", mustQuestion(t, cat, plan.QuestionIDs[2]).ObjectiveID)
}

func TestBuildDrill_NothingDue(t *testing.T) {
	cat := testCatalog(t)
	_, err := BuildDrill(cat, nil, nil)
	assert.ErrorIs(t, err, ErrNothingDue)
}

func TestBuildDrill_SeededIsReproducible(t *testing.T) {
	cat := testCatalog(t)
	due := dueObjectives(cat, 3*time.Hour, 2*time.Hour, time.Hour)

	a, err := BuildDrill(cat, due, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := BuildDrill(cat, due, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a.QuestionIDs, b.QuestionIDs)
}

func TestBuildDrill_DoesNotReorderInput(t *testing.T) {
	cat := testCatalog(t)
	due := dueObjectives(cat, time.Hour, 2*time.Hour)

	_, err := BuildDrill(cat, due, nil)
	require.NoError(t, err)
	assert.Equal(t, "o1", due[0].ID)
}

func TestBuildPlacement(t *testing.T) {
	cat := testCatalog(t)
	plan := BuildPlacement(cat, rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, KindPlacement, plan.Kind)
	assert.Len(t, plan.QuestionIDs, 2*placement.QuestionsPerDomain)
}

func TestBuildPractice(t *testing.T) {
	cat := testCatalog(t)

	plan, err := BuildPractice(cat, "o3", nil)
	require.NoError(t, err)
	assert.Equal(t, KindPractice, plan.Kind)
	assert.Equal(t, "o3", plan.ObjectiveID)
	assert.ElementsMatch(t, []string{"o3-q1", "o3-q2", "o3-q3"}, plan.QuestionIDs)

	_, err = BuildPractice(cat, "nope", nil)
	assert.Error(t, err)
}

func TestKindSource(t *testing.T) {
	assert.Equal(t, "placement", KindPlacement.Source())
	assert.Equal(t, "drill", KindDrill.Source())
	assert.Equal(t, "academy", KindPractice.Source())
}

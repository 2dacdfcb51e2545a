package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/placement"
)

// ErrNothingDue is returned when a drill is requested with no due objectives.
var ErrNothingDue = errors.New("no objectives are due for review")

// BuildDrill plans a review drill from the due objectives. The most
// overdue objectives come first (ties keep their input order); the first
// DrillObjectives of them each contribute up to DrillQuestionsPerObjective
// random questions, and the drill stops at MaxDrillQuestions.
func BuildDrill(cat *catalog.Catalog, due []catalog.Objective, rng *rand.Rand) (*Plan, error) {
	if len(due) == 0 {
		return nil, ErrNothingDue
	}

	ordered := make([]catalog.Objective, len(due))
	copy(ordered, due)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].NextDue.Before(ordered[j].NextDue)
	})
	if len(ordered) > DrillObjectives {
		ordered = ordered[:DrillObjectives]
	}

	plan := &Plan{Kind: KindDrill}
	for _, obj := range ordered {
		ids := questionIDs(cat.QuestionsForObjective(obj.ID))
		shuffle(rng, ids)
		if len(ids) > DrillQuestionsPerObjective {
			ids = ids[:DrillQuestionsPerObjective]
		}
		plan.QuestionIDs = append(plan.QuestionIDs, ids...)
	}
	if len(plan.QuestionIDs) > MaxDrillQuestions {
		plan.QuestionIDs = plan.QuestionIDs[:MaxDrillQuestions]
	}
	if len(plan.QuestionIDs) == 0 {
		return nil, ErrNothingDue
	}
	return plan, nil
}

// BuildPlacement plans a placement quiz.
func BuildPlacement(cat *catalog.Catalog, rng *rand.Rand) *Plan {
	return &Plan{
		Kind:        KindPlacement,
		QuestionIDs: placement.GenerateQuiz(cat, rng),
	}
}

// BuildPractice plans a short run over one objective's questions.
func BuildPractice(cat *catalog.Catalog, objectiveID string, rng *rand.Rand) (*Plan, error) {
	if _, ok := cat.Objective(objectiveID); !ok {
		return nil, fmt.Errorf("unknown objective %q", objectiveID)
	}
	ids := questionIDs(cat.QuestionsForObjective(objectiveID))
	if len(ids) == 0 {
		return nil, fmt.Errorf("objective %q has no questions", objectiveID)
	}
	shuffle(rng, ids)
	if len(ids) > MaxPracticeQuestions {
		ids = ids[:MaxPracticeQuestions]
	}
	return &Plan{Kind: KindPractice, QuestionIDs: ids, ObjectiveID: objectiveID}, nil
}

func questionIDs(qs []catalog.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

func shuffle(rng *rand.Rand, ids []string) {
	swap := func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }
	if rng == nil {
		rand.Shuffle(len(ids), swap)
		return
	}
	rng.Shuffle(len(ids), swap)
}

package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendDiagnosisEvent(ctx context.Context, data DiagnosisEventData) error {
	err := r.insertEvent(ctx, diagnosisEventsTable,
		[]string{"session_id", "question_id", "objective_id", "category", "confidence", "classifier_name"},
		data.SessionID, data.QuestionID, data.ObjectiveID, data.Category, data.Confidence, data.ClassifierName,
	)
	if err != nil {
		return fmt.Errorf("save diagnosis event: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendExplanationEvent(ctx context.Context, data ExplanationEventData) error {
	err := r.insertEvent(ctx, explanationEventsTable,
		[]string{"question_id", "mode", "generated"},
		data.QuestionID, data.Mode, data.Generated,
	)
	if err != nil {
		return fmt.Errorf("save explanation event: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insertEvent(ctx, sessionEventsTable,
		[]string{"session_id", "kind", "action", "questions_served", "correct_answers", "duration_secs"},
		data.SessionID, data.Kind, data.Action, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insertEvent(ctx, answerEventsTable,
		[]string{"session_id", "source", "question_id", "objective_id", "domain", "correct", "confidence", "time_ms"},
		data.SessionID, data.Source, data.QuestionID, data.ObjectiveID, data.Domain, data.Correct, data.Confidence, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := selectEvents(answerEventsTable, opts,
		"session_id", "source", "question_id", "objective_id", "domain", "correct", "confidence", "time_ms")

	var records []AnswerEventRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var e AnswerEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.Source, &e.QuestionID,
			&e.ObjectiveID, &e.Domain, &e.Correct, &e.Confidence, &e.TimeMs); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) ObjectiveAccuracy(ctx context.Context, objectiveID string) (float64, int, error) {
	t := builder().Table(answerEventsTable)
	sel := builder().Select("correct").From(t).Where(entsql.EQ(t.C("objective_id"), objectiveID))

	total, correct := 0, 0
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var ok bool
		if err := rows.Scan(&ok); err != nil {
			return err
		}
		total++
		if ok {
			correct++
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("query objective accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := selectEvents(sessionEventsTable, opts,
		"session_id", "kind", "questions_served", "correct_answers", "duration_secs")
	sel.Where(entsql.EQ(sel.C("action"), ActionEnd))

	var records []SessionSummaryRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			seq int64
			s   SessionSummaryRecord
		)
		if err := rows.Scan(&seq, &s.Timestamp, &s.SessionID, &s.Kind,
			&s.QuestionsServed, &s.CorrectAnswers, &s.DurationSecs); err != nil {
			return err
		}
		records = append(records, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

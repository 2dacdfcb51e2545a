package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendMasteryEvent(ctx context.Context, data MasteryEventData) error {
	err := r.insertEvent(ctx, masteryEventsTable,
		[]string{"session_id", "objective_id", "from_state", "to_state", "trigger", "mastery"},
		data.SessionID, data.ObjectiveID, data.FromState, data.ToState, data.Trigger, data.Mastery,
	)
	if err != nil {
		return fmt.Errorf("save mastery event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryMasteryEvents(ctx context.Context, opts QueryOpts) ([]MasteryEventRecord, error) {
	sel := selectEvents(masteryEventsTable, opts,
		"session_id", "objective_id", "from_state", "to_state", "trigger", "mastery")

	var records []MasteryEventRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var e MasteryEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.ObjectiveID,
			&e.FromState, &e.ToState, &e.Trigger, &e.Mastery); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query mastery events: %w", err)
	}
	return records, nil
}

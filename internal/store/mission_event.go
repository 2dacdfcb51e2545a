package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendMissionEvent(ctx context.Context, data MissionEventData) error {
	err := r.insertEvent(ctx, missionEventsTable,
		[]string{"mission_id", "mission_type", "score", "grade", "intel"},
		data.MissionID, data.MissionType, data.Score, data.Grade, data.Intel,
	)
	if err != nil {
		return fmt.Errorf("save mission event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryMissionEvents(ctx context.Context, opts QueryOpts) ([]MissionEventRecord, error) {
	sel := selectEvents(missionEventsTable, opts, "mission_id", "mission_type", "score", "grade", "intel")

	var records []MissionEventRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var e MissionEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.MissionID, &e.MissionType,
			&e.Score, &e.Grade, &e.Intel); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query mission events: %w", err)
	}
	return records, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// placementRepo implements PlacementRepo over the placement_runs table.
type placementRepo struct {
	drv *entsql.Driver
}

func (r *placementRepo) Save(ctx context.Context, run *PlacementRun) error {
	responses, err := json.Marshal(run.Responses)
	if err != nil {
		return fmt.Errorf("marshal placement responses: %w", err)
	}
	profiles, err := json.Marshal(run.Profiles)
	if err != nil {
		return fmt.Errorf("marshal placement profiles: %w", err)
	}

	takenAt := run.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}

	query, args := builder().Insert(placementRunsTable).
		Columns("run_id", "taken_at", "responses", "profiles", "recommended_domain").
		Values(run.RunID, takenAt.UTC(), responses, profiles, run.RecommendedDomain).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save placement run: %w", err)
	}
	return nil
}

func (r *placementRepo) Recent(ctx context.Context, limit int) ([]PlacementRun, error) {
	t := builder().Table(placementRunsTable)
	sel := builder().Select("id", "run_id", "taken_at", "responses", "profiles", "recommended_domain").
		From(t).
		OrderBy(entsql.Desc(t.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}

	var runs []PlacementRun
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			run                 PlacementRun
			responses, profiles []byte
		)
		if err := rows.Scan(&run.ID, &run.RunID, &run.TakenAt, &responses, &profiles, &run.RecommendedDomain); err != nil {
			return err
		}
		if err := json.Unmarshal(responses, &run.Responses); err != nil {
			return fmt.Errorf("unmarshal placement responses: %w", err)
		}
		if err := json.Unmarshal(profiles, &run.Profiles); err != nil {
			return fmt.Errorf("unmarshal placement profiles: %w", err)
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query placement runs: %w", err)
	}
	return runs, nil
}

func (r *placementRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	threshold, err := nthNewestID(ctx, r.drv, placementRunsTable, keep)
	if err != nil {
		return fmt.Errorf("query placement runs for prune: %w", err)
	}
	if threshold == 0 {
		return nil
	}

	query, args := builder().Delete(placementRunsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune placement runs: %w", err)
	}
	return nil
}

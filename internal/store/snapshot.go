package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo over the snapshots table.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(snapshotsTable).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, ts.UTC(), data).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Latest orders by insertion so the snapshot saved last wins even when
// two share a timestamp.
func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	t := builder().Table(snapshotsTable)
	sel := builder().Select("id", "sequence", "timestamp", "data").From(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Limit(1)

	var snap *Snapshot
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			s   Snapshot
			raw []byte
		)
		if err := rows.Scan(&s.ID, &s.Sequence, &s.Timestamp, &raw); err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &s.Data); err != nil {
			return fmt.Errorf("unmarshal snapshot data: %w", err)
		}
		snap = &s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	// Find the ID threshold: the newest snapshot that falls outside keep.
	threshold, err := nthNewestID(ctx, r.drv, snapshotsTable, keep)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if threshold == 0 {
		return nil // fewer than keep snapshots exist
	}

	query, args := builder().Delete(snapshotsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// nthNewestID returns the id of the row at offset n when ordered newest
// first, or 0 when the table has n rows or fewer.
func nthNewestID(ctx context.Context, drv *entsql.Driver, table string, n int) (int, error) {
	t := builder().Table(table)
	sel := builder().Select("id").From(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Offset(n).
		Limit(1)

	var id int
	err := queryRows(ctx, drv, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&id)
	})
	return id, err
}

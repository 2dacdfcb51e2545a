package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own table, so per-table
// auto-increment IDs can't establish cross-type ordering. This shared
// counter assigns a single increasing sequence to every event regardless
// of type, so an answer, its diagnosis and the mastery transition it
// caused can be read back in order, and snapshots can record how far the
// log had progressed.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Current returns the last sequence number handed out, or 0.
func (sc *sequenceCounter) Current(ctx context.Context) (int64, error) {
	var next int64
	err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo backed by the SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insertEvent assigns the next sequence number and inserts one event row.
func (r *eventRepo) insertEvent(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...).
		Query()
	return r.drv.Exec(ctx, query, args, nil)
}

// selectEvents builds a query over an event table, newest first, with
// the filters in opts applied.
func selectEvents(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	t := builder().Table(table)
	sel := builder().Select(append([]string{"sequence", "timestamp"}, columns...)...).From(t)
	sel.OrderBy(entsql.Desc(sel.C("sequence")))

	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT(sel.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(sel.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(sel.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(sel.C("timestamp"), opts.To.UTC()))
	}
	return sel
}

// queryRows runs q and calls scan for every row.
func queryRows(ctx context.Context, drv *entsql.Driver, q entsql.Querier, scan func(*entsql.Rows) error) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const tableSequence = "global_sequence"

// sequenceCounter stamps every funnel event with a global monotonic
// sequence. Sessions run on a virtual clock in tests, so timestamps can
// collide and never decide ordering.
//
// The counter row is bumped with UPDATE ... RETURNING, which stays atomic
// when several processes append to the same file; the mutex only keeps
// one process from racing itself.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// newSequenceCounter creates the counter table and its single row.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	ddl := `CREATE TABLE IF NOT EXISTS ` + tableSequence + ` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`
	if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	query, args := builder().
		Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{drv: drv}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := builder().
		Update(tableSequence).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()

	var rows entsql.Rows
	if err := sc.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var next int64
	if err := rows.Scan(&next); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return next - 1, nil
}

// reset rewinds the counter so the next event gets sequence 1.
func (sc *sequenceCounter) reset(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := builder().
		Update(tableSequence).
		Set("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := sc.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}

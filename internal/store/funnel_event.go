package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	entschema "github.com/abhisek/funnel/ent/schema"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// eventFields returns the funnel_events fields in column order, mixin
// fields first.
func eventFields() []ent.Field {
	return append(entschema.EventMixin{}.Fields(), entschema.FunnelEvent{}.Fields()...)
}

func eventIndexes() []ent.Index {
	return append(entschema.EventMixin{}.Indexes(), entschema.FunnelEvent{}.Indexes()...)
}

// eventColumns lists the funnel_events columns in table order. Inserts
// bind values in this order.
var eventColumns = func() []string {
	fields := eventFields()
	cols := make([]string, 0, len(fields)+1)
	cols = append(cols, "id")
	for _, f := range fields {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}()

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendFunnelEvent(ctx context.Context, data FunnelEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	at := data.At
	if at.IsZero() {
		at = time.Now()
	}

	query, args := builder().
		Insert(tableEvents).
		Columns(eventColumns[1:]...).
		Values(seqNum, at.UnixMilli(), data.SessionID, data.Kind,
			data.Step, data.ToStep, data.Option, data.XP, data.Level, data.Detail).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save funnel event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]FunnelEvent, error) {
	sel := builder().
		Select(eventColumns...).
		From(entsql.Table(tableEvents)).
		Where(entsql.And(
			entsql.EQ("session_id", sessionID),
			entsql.GT("sequence", opts.After),
		)).
		OrderBy("sequence")
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []FunnelEvent
	for rows.Next() {
		var (
			e         FunnelEvent
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &createdAt, &e.SessionID, &e.Kind,
			&e.Step, &e.ToStep, &e.Option, &e.XP, &e.Level, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan funnel event: %w", err)
		}
		e.At = time.UnixMilli(createdAt)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funnel events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) Stats(ctx context.Context) (*FunnelStats, error) {
	stats := &FunnelStats{Reached: make(map[int]int)}

	kinds, err := r.countBy(ctx, "kind", nil)
	if err != nil {
		return nil, err
	}
	stats.Sessions = kinds[KindSessionStart]
	stats.Answers = kinds[KindAnswer]
	stats.GatePassed = kinds[KindGatePass]
	stats.GateFailed = kinds[KindGateFail]
	stats.Completed = kinds[KindComplete]
	stats.Declined = kinds[KindDecline]
	stats.Redirects = kinds[KindRedirect]
	stats.BonusAccepted = kinds[KindBonusAccept]
	stats.BonusDeclined = kinds[KindBonusDecline]

	reached, err := r.reachedSteps(ctx)
	if err != nil {
		return nil, err
	}
	for step, n := range reached {
		stats.Reached[step] = n
	}
	if stats.Sessions > 0 {
		stats.Reached[0] = stats.Sessions
	}

	second, err := r.countBy(ctx, "step", entsql.EQ("kind", KindRedirect))
	if err != nil {
		return nil, err
	}
	for step, n := range second {
		if step != "16" {
			stats.SecondChances += n
		}
	}

	return stats, nil
}

// countBy returns COUNT(*) grouped by column, as text keys.
func (r *eventRepo) countBy(ctx context.Context, column string, where *entsql.Predicate) (map[string]int, error) {
	sel := builder().
		Select(column, entsql.Count("*")).
		From(entsql.Table(tableEvents)).
		GroupBy(column)
	if where != nil {
		sel = sel.Where(where)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("count events by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// reachedSteps counts distinct sessions per entered step.
func (r *eventRepo) reachedSteps(ctx context.Context) (map[int]int, error) {
	query, args := builder().
		Select("to_step", entsql.Count(entsql.Distinct("session_id"))).
		From(entsql.Table(tableEvents)).
		Where(entsql.EQ("kind", KindEnter)).
		GroupBy("to_step").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("count reached steps: %w", err)
	}
	defer rows.Close()

	reached := make(map[int]int)
	for rows.Next() {
		var step, n int
		if err := rows.Scan(&step, &n); err != nil {
			return nil, fmt.Errorf("scan reached step: %w", err)
		}
		reached[step] = n
	}
	return reached, rows.Err()
}

func (r *eventRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(tableEvents).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete funnel events: %w", err)
	}
	return r.seq.reset(ctx)
}

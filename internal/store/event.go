package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// the journal and result tables. Per-table auto-increment IDs can't order
// rows across tables; this counter assigns a single increasing sequence to
// every row regardless of table, so an answer event can be placed relative
// to the session's start and submit events.
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

// Timestamps are stored as UTC RFC 3339 text so they sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// queryFilter translates QueryOpts into a WHERE clause over the given
// sequence and timestamp columns.
func queryFilter(opts QueryOpts, seqCol, tsCol string) (string, []any) {
	var (
		where string
		args  []any
	)
	add := func(cond string, arg any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, arg)
	}
	if opts.After > 0 {
		add(seqCol+" > ?", opts.After)
	}
	if opts.Before > 0 {
		add(seqCol+" < ?", opts.Before)
	}
	if !opts.From.IsZero() {
		add(tsCol+" >= ?", formatTime(opts.From))
	}
	if !opts.To.IsZero() {
		add(tsCol+" <= ?", formatTime(opts.To))
	}
	return where, args
}

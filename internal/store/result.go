package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/examiz/internal/session"
)

// resultRepo implements ResultRepo with raw SQL. The full outcome is kept
// as a JSON payload next to the columns used for listing.
type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *resultRepo) Deliver(ctx context.Context, o *session.Outcome) error {
	if o == nil || o.Result == nil {
		return fmt.Errorf("save result: empty outcome")
	}
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	res := o.Result
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO results
			(session_id, sequence, submitted_at, exam_title, submit_trigger, total, correct, incorrect,
			 unanswered, percentage, accuracy, band, passed, elapsed_secs, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.SessionID, seqNum, formatTime(o.SubmittedAt), o.ExamTitle, string(o.Trigger),
		res.Overall.Total, res.Overall.Correct, res.Overall.Incorrect, res.Overall.Unanswered,
		res.Overall.Percentage, res.Overall.Accuracy, res.Band.Name, res.Band.Pass,
		o.ElapsedSecs, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

const resultColumns = `session_id, sequence, submitted_at, exam_title, submit_trigger, total, correct,
	incorrect, unanswered, percentage, accuracy, band, passed, elapsed_secs`

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	where, args := queryFilter(opts, "sequence", "submitted_at")
	query := `SELECT ` + resultColumns + ` FROM results` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return records, nil
}

func (r *resultRepo) Get(ctx context.Context, sessionID string) (*ResultRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+`, outcome FROM results WHERE session_id = ?`, sessionID)

	var payload string
	rec, err := scanResult(row, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var o session.Outcome
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		return nil, fmt.Errorf("unmarshal outcome: %w", err)
	}
	rec.Outcome = &o
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner, extra ...any) (*ResultRecord, error) {
	var (
		rec ResultRecord
		ts  string
	)
	dest := []any{
		&rec.SessionID, &rec.Sequence, &ts, &rec.ExamTitle, &rec.Trigger, &rec.Total,
		&rec.Correct, &rec.Incorrect, &rec.Unanswered, &rec.Percentage, &rec.Accuracy,
		&rec.Band, &rec.Passed, &rec.ElapsedSecs,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan result: %w", err)
	}
	t, err := parseTime(ts)
	if err != nil {
		return nil, err
	}
	rec.SubmittedAt = t
	return &rec, nil
}

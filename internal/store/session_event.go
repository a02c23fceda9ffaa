package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/examiz/internal/session"
)

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, ev session.SessionEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, exam_title, action, submit_trigger, answered, total, elapsed_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), ev.SessionID, ev.ExamTitle, ev.Action,
		string(ev.Trigger), ev.Answered, ev.Total, ev.ElapsedSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, ev session.AnswerEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events (sequence, timestamp, session_id, question_id, part_id, option_index)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), ev.SessionID, ev.QuestionID, ev.PartID, ev.Option,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	where, args := queryFilter(opts, "sequence", "timestamp")
	query := `SELECT sequence, timestamp, session_id, exam_title, action, submit_trigger, answered, total, elapsed_secs
		FROM session_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var (
			rec SessionEventRecord
			ts  string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.ExamTitle, &rec.Action,
			&rec.Trigger, &rec.Answered, &rec.Total, &rec.ElapsedSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if rec.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, question_id, part_id, option_index
		FROM answer_events WHERE session_id = ? ORDER BY sequence ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec AnswerEventRecord
			ts  string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.QuestionID, &rec.PartID, &rec.Option); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		if rec.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return records, nil
}

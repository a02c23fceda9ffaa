package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence     INTEGER NOT NULL UNIQUE,
		timestamp    TEXT    NOT NULL,
		session_id   TEXT    NOT NULL,
		exam_title   TEXT    NOT NULL,
		action       TEXT    NOT NULL,
		submit_trigger TEXT  NOT NULL DEFAULT '',
		answered     INTEGER NOT NULL DEFAULT 0,
		total        INTEGER NOT NULL DEFAULT 0,
		elapsed_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS answer_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence    INTEGER NOT NULL UNIQUE,
		timestamp   TEXT    NOT NULL,
		session_id  TEXT    NOT NULL,
		question_id INTEGER NOT NULL,
		part_id     TEXT    NOT NULL,
		option_index INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS results (
		session_id   TEXT    PRIMARY KEY,
		sequence     INTEGER NOT NULL UNIQUE,
		submitted_at TEXT    NOT NULL,
		exam_title   TEXT    NOT NULL,
		submit_trigger TEXT  NOT NULL,
		total        INTEGER NOT NULL,
		correct      INTEGER NOT NULL,
		incorrect    INTEGER NOT NULL,
		unanswered   INTEGER NOT NULL,
		percentage   INTEGER NOT NULL,
		accuracy     INTEGER NOT NULL,
		band         TEXT    NOT NULL,
		passed       INTEGER NOT NULL,
		elapsed_secs INTEGER NOT NULL,
		outcome      TEXT    NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

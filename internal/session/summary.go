package session

import (
	"context"
	"time"

	"github.com/abhisek/examiz/internal/ledger"
	"github.com/abhisek/examiz/internal/scoring"
)

// Trigger records what caused submission.
type Trigger string

const (
	TriggerUser   Trigger = "user"
	TriggerExpiry Trigger = "expiry"
)

// Outcome is the single terminal product of a session, handed to the
// ResultSink once.
type Outcome struct {
	SessionID string  `json:"session_id"`
	ExamTitle string  `json:"exam_title"`
	Trigger   Trigger `json:"trigger"`

	StartedAt   time.Time `json:"started_at"`
	SubmittedAt time.Time `json:"submitted_at"`

	// ElapsedSecs counts clock ticks while in progress. PartElapsedSecs
	// splits them by the part that was on screen.
	ElapsedSecs     int            `json:"elapsed_secs"`
	PartElapsedSecs map[string]int `json:"part_elapsed_secs"`

	Total    int            `json:"total"`
	Answered int            `json:"answered"`
	Answers  ledger.Entries `json:"answers"`
	Flagged  []int          `json:"flagged"`

	Result *scoring.Result `json:"result"`
}

// ResultSink receives submitted outcomes.
type ResultSink interface {
	Deliver(ctx context.Context, o *Outcome) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(ctx context.Context, o *Outcome) error

// Deliver calls f.
func (f ResultSinkFunc) Deliver(ctx context.Context, o *Outcome) error {
	return f(ctx, o)
}

// SessionEvent is a lifecycle journal entry.
type SessionEvent struct {
	SessionID   string
	ExamTitle   string
	Action      string // "start" or "submit"
	Trigger     Trigger
	Answered    int
	Total       int
	ElapsedSecs int
}

// AnswerEvent is a journal entry for an accepted answer selection.
type AnswerEvent struct {
	SessionID  string
	QuestionID int
	PartID     string
	Option     int
}

// Journal records accepted session mutations. It is optional; a nil
// journal records nothing. Start and answer events are appended while the
// controller lock is held, so implementations must not call back into the
// Controller.
type Journal interface {
	AppendSessionEvent(ctx context.Context, ev SessionEvent) error
	AppendAnswerEvent(ctx context.Context, ev AnswerEvent) error
}

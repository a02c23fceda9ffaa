package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/examiz/internal/session"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventRecord is a stored lifecycle event.
type SessionEventRecord struct {
	Sequence    int64
	Timestamp   time.Time
	SessionID   string
	ExamTitle   string
	Action      string
	Trigger     string
	Answered    int
	Total       int
	ElapsedSecs int
}

// AnswerEventRecord is a stored answer selection.
type AnswerEventRecord struct {
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	QuestionID int
	PartID     string
	Option     int
}

// EventRepo provides append and query access to the session journal.
// It satisfies session.Journal.
type EventRepo interface {
	// AppendSessionEvent records a session start or submit.
	AppendSessionEvent(ctx context.Context, ev session.SessionEvent) error

	// AppendAnswerEvent records an accepted answer selection.
	AppendAnswerEvent(ctx context.Context, ev session.AnswerEvent) error

	// QuerySessionEvents returns lifecycle events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// AnswerEvents returns every answer event of a session in the order
	// they were recorded.
	AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)
}

// ResultRecord is a stored session result.
type ResultRecord struct {
	SessionID   string
	Sequence    int64
	SubmittedAt time.Time
	ExamTitle   string
	Trigger     string
	Total       int
	Correct     int
	Incorrect   int
	Unanswered  int
	Percentage  int
	Accuracy    int
	Band        string
	Passed      bool
	ElapsedSecs int

	// Outcome is the full submitted outcome. Populated by Get only.
	Outcome *session.Outcome
}

// ResultRepo stores one result per submitted session. It satisfies
// session.ResultSink.
type ResultRepo interface {
	// Deliver persists a submitted outcome.
	Deliver(ctx context.Context, o *session.Outcome) error

	// List returns stored results, newest first.
	List(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// Get returns the result for sessionID with its full outcome, or
	// ErrNotFound.
	Get(ctx context.Context, sessionID string) (*ResultRecord, error)
}

var (
	_ session.Journal    = (*eventRepo)(nil)
	_ session.ResultSink = (*resultRepo)(nil)
)

package session

import "github.com/abhisek/examiz/internal/media"

// Phase represents the lifecycle phase of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Built, clock not running
	PhaseInProgress              // Accepting answers, flags and navigation
	PhaseSubmitting              // Scoring; all mutations are ignored
	PhaseSubmitted               // Outcome produced
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// State is a read-only view of a session for rendering.
type State struct {
	SessionID string
	Phase     Phase

	PartID        string
	PartIndex     int
	QuestionID    int
	QuestionIndex int // within the current part

	// Remaining is the whole seconds left on the exam clock.
	Remaining int

	Total    int
	Answered int
	Flagged  int

	IsFirst bool
	IsLast  bool

	Audio media.Status
}

// TargetKind selects how GoTo moves the cursor.
type TargetKind int

const (
	TargetNext TargetKind = iota
	TargetPrevious
	TargetQuestion
	TargetPart
)

// Target is a navigation request.
type Target struct {
	Kind       TargetKind
	QuestionID int
	PartID     string
}

// NextQuestion targets the question after the current one.
func NextQuestion() Target { return Target{Kind: TargetNext} }

// PreviousQuestion targets the question before the current one.
func PreviousQuestion() Target { return Target{Kind: TargetPrevious} }

// QuestionTarget targets a question by ID.
func QuestionTarget(id int) Target { return Target{Kind: TargetQuestion, QuestionID: id} }

// PartTarget targets the first question of a part.
func PartTarget(id string) Target { return Target{Kind: TargetPart, PartID: id} }

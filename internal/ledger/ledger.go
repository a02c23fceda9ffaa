// Package ledger holds the test-taker's mutable answers and review flags.
//
// Neither structure validates against the exam content: the session
// controller checks question IDs and option ranges before recording.
package ledger

// Entries is a read-only copy of recorded answers, keyed by question ID.
type Entries map[int]int

// AnswerFor returns the recorded option for questionID.
func (e Entries) AnswerFor(questionID int) (int, bool) {
	opt, ok := e[questionID]
	return opt, ok
}

// Ledger maps question IDs to selected option indices. Entries are
// created or overwritten, never removed.
type Ledger struct {
	answers map[int]int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{answers: make(map[int]int)}
}

// Record stores option as the answer for questionID, replacing any prior one.
func (l *Ledger) Record(questionID, option int) {
	l.answers[questionID] = option
}

// AnswerFor returns the recorded option, or false if unanswered.
func (l *Ledger) AnswerFor(questionID int) (int, bool) {
	opt, ok := l.answers[questionID]
	return opt, ok
}

// Len returns the number of answered questions.
func (l *Ledger) Len() int {
	return len(l.answers)
}

// Entries returns a copy of the ledger that later Records do not affect.
func (l *Ledger) Entries() Entries {
	out := make(Entries, len(l.answers))
	for id, opt := range l.answers {
		out[id] = opt
	}
	return out
}

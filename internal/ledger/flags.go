package ledger

import "sort"

// FlagSet is the set of questions marked for review. Flags are advisory
// and never affect scoring.
type FlagSet struct {
	ids map[int]bool
}

// NewFlagSet creates an empty set.
func NewFlagSet() *FlagSet {
	return &FlagSet{ids: make(map[int]bool)}
}

// Toggle flips the flag on questionID and returns the new state.
func (f *FlagSet) Toggle(questionID int) bool {
	if f.ids[questionID] {
		delete(f.ids, questionID)
		return false
	}
	f.ids[questionID] = true
	return true
}

// IsFlagged reports whether questionID is flagged.
func (f *FlagSet) IsFlagged(questionID int) bool {
	return f.ids[questionID]
}

// Len returns the number of flagged questions.
func (f *FlagSet) Len() int {
	return len(f.ids)
}

// IDs returns the flagged question IDs in ascending order.
func (f *FlagSet) IDs() []int {
	out := make([]int, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

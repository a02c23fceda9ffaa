package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/exam/examtest"
	"github.com/abhisek/examiz/internal/ledger"
)

func TestScore_MixedAnswers(t *testing.T) {
	def := examtest.TwoParts()
	entries := ledger.Entries{1: 0, 2: 1}

	res := Score(def, entries, DefaultBands())

	assert.Equal(t, Tally{Total: 3, Correct: 1, Incorrect: 1, Unanswered: 1, Percentage: 33, Accuracy: 50}, res.Overall)
	assert.Equal(t, "Below Pass", res.Band.Name)
	assert.False(t, res.Passed())

	a, ok := res.Part("A")
	require.True(t, ok)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, 1, a.Correct)
	assert.Equal(t, 1, a.Incorrect)
	assert.Equal(t, 0, a.Unanswered)
	assert.Equal(t, 50, a.Percentage)

	b, ok := res.Part("B")
	require.True(t, ok)
	assert.Equal(t, 1, b.Total)
	assert.Equal(t, 0, b.Correct)
	assert.Equal(t, 0, b.Incorrect)
	assert.Equal(t, 1, b.Unanswered)
	assert.Equal(t, 0, b.Percentage)
}

func TestScore_QuestionOrderAndClassification(t *testing.T) {
	res := Score(examtest.TwoParts(), ledger.Entries{1: 0, 2: 1}, nil)

	require.Len(t, res.Questions, 3)
	want := []struct {
		id       int
		class    Classification
		selected int
	}{
		{1, Correct, 0},
		{2, Incorrect, 1},
		{3, Unanswered, -1},
	}
	for i, w := range want {
		q := res.Questions[i]
		assert.Equal(t, w.id, q.QuestionID)
		assert.Equal(t, w.class, q.Classification, "question %d", w.id)
		assert.Equal(t, w.selected, q.Selected, "question %d", w.id)
	}
}

func TestScore_IgnoresUnknownEntries(t *testing.T) {
	res := Score(examtest.TwoParts(), ledger.Entries{1: 0, 99: 3}, nil)
	assert.Equal(t, 3, res.Overall.Total)
	assert.Equal(t, 1, res.Overall.Correct)
	assert.Equal(t, 2, res.Overall.Unanswered)
}

func TestScore_EmptyLedger(t *testing.T) {
	res := Score(examtest.TwoParts(), ledger.Entries{}, nil)
	assert.Equal(t, 3, res.Overall.Unanswered)
	assert.Equal(t, 0, res.Overall.Percentage)
	assert.Equal(t, 0, res.Overall.Accuracy)
}

func TestScore_PerfectScore(t *testing.T) {
	res := Score(examtest.TwoParts(), ledger.Entries{1: 0, 2: 2, 3: 1}, nil)
	assert.Equal(t, 100, res.Overall.Percentage)
	assert.Equal(t, "Advanced", res.Band.Name)
	assert.True(t, res.Passed())
}

func TestScore_CompletenessForAnyLedger(t *testing.T) {
	def := examtest.TwoParts()
	ledgers := []ledger.Entries{
		{},
		{1: 0},
		{1: 3, 2: 3, 3: 3},
		{1: 0, 2: 2, 3: 1},
		{3: 1, 42: 0},
	}
	for _, entries := range ledgers {
		res := Score(def, entries, nil)
		o := res.Overall
		assert.Equal(t, o.Total, o.Correct+o.Incorrect+o.Unanswered, "overall %v", entries)
		assert.Equal(t, len(def.Questions), o.Total)
		for _, p := range res.Parts {
			assert.Equal(t, p.Total, p.Correct+p.Incorrect+p.Unanswered, "part %s %v", p.PartID, entries)
		}
	}
}

func TestPercent_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		num, den, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5
		{0, 0, 0},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := percent(tt.num, tt.den); got != tt.want {
			t.Errorf("percent(%d, %d) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}

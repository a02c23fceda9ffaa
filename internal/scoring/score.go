// Package scoring turns a frozen answer ledger into a graded result.
package scoring

import (
	"math"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/ledger"
)

// Classification is the outcome of a single question.
type Classification string

const (
	Correct    Classification = "correct"
	Incorrect  Classification = "incorrect"
	Unanswered Classification = "unanswered"
)

// QuestionResult is the per-question line of a result.
type QuestionResult struct {
	QuestionID     int            `json:"question_id"`
	PartID         string         `json:"part_id"`
	Selected       int            `json:"selected"` // -1 when unanswered
	CorrectAnswer  int            `json:"correct_answer"`
	Classification Classification `json:"classification"`
}

// Tally aggregates classifications over a set of questions.
// Correct+Incorrect+Unanswered always equals Total.
type Tally struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`

	// Percentage is correct over total questions.
	Percentage int `json:"percentage"`

	// Accuracy is correct over answered questions, 0 when nothing was answered.
	Accuracy int `json:"accuracy"`
}

// Answered returns the number of questions with a recorded answer.
func (t Tally) Answered() int {
	return t.Correct + t.Incorrect
}

func (t *Tally) add(c Classification) {
	t.Total++
	switch c {
	case Correct:
		t.Correct++
	case Incorrect:
		t.Incorrect++
	default:
		t.Unanswered++
	}
}

func (t *Tally) finish() {
	t.Percentage = percent(t.Correct, t.Total)
	t.Accuracy = percent(t.Correct, t.Answered())
}

// PartResult is the breakdown for one part.
type PartResult struct {
	PartID string `json:"part_id"`
	Title  string `json:"title"`
	Tally
}

// Result is the immutable outcome of scoring one session.
type Result struct {
	Overall   Tally            `json:"overall"`
	Band      Band             `json:"band"`
	Parts     []PartResult     `json:"parts"`
	Questions []QuestionResult `json:"questions"`
}

// Passed reports whether the awarded band is a passing band.
func (r *Result) Passed() bool {
	return r.Band.Pass
}

// Part returns the breakdown for partID.
func (r *Result) Part(partID string) (PartResult, bool) {
	for _, p := range r.Parts {
		if p.PartID == partID {
			return p, true
		}
	}
	return PartResult{}, false
}

// Score classifies every question of def against entries and grades the
// overall percentage with bands. Entries for IDs not in the exam are
// ignored. Questions are listed part by part in ascending ID order.
func Score(def *exam.Definition, entries ledger.Entries, bands Bands) *Result {
	if len(bands) == 0 {
		bands = DefaultBands()
	}

	res := &Result{
		Parts:     make([]PartResult, 0, len(def.Parts)),
		Questions: make([]QuestionResult, 0, len(def.Questions)),
	}

	for _, p := range def.Parts {
		pr := PartResult{PartID: p.ID, Title: p.Title}
		for _, q := range def.QuestionsInPart(p.ID) {
			qr := classify(q, entries)
			pr.add(qr.Classification)
			res.Overall.add(qr.Classification)
			res.Questions = append(res.Questions, qr)
		}
		pr.finish()
		res.Parts = append(res.Parts, pr)
	}

	res.Overall.finish()
	res.Band = bands.Grade(res.Overall.Percentage)
	return res
}

func classify(q exam.Question, entries ledger.Entries) QuestionResult {
	qr := QuestionResult{
		QuestionID:    q.ID,
		PartID:        q.PartID,
		Selected:      -1,
		CorrectAnswer: q.CorrectAnswer,
	}
	opt, ok := entries.AnswerFor(q.ID)
	switch {
	case !ok:
		qr.Classification = Unanswered
	case opt == q.CorrectAnswer:
		qr.Selected = opt
		qr.Classification = Correct
	default:
		qr.Selected = opt
		qr.Classification = Incorrect
	}
	return qr
}

// percent rounds num/den*100 half away from zero. A zero denominator is 0%.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

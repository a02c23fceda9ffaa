// Package navigation tracks the current part and question of a session.
package navigation

import (
	"errors"
	"fmt"

	"github.com/abhisek/examiz/internal/exam"
)

// ErrInvalidTarget is returned when a jump names a question or part that
// does not exist. The cursor is left unchanged.
var ErrInvalidTarget = errors.New("invalid navigation target")

// Cursor walks the exam part by part, visiting questions in ascending ID
// order within each part. Part and question position are a single value,
// so crossing a part boundary is one update.
type Cursor struct {
	parts []exam.Part
	order [][]exam.Question // per part, ascending IDs
	where map[int]position  // question ID -> position
	pos   position
}

type position struct {
	part     int
	question int
}

// New builds a cursor over a validated definition, positioned at the
// first question of the first part.
func New(def *exam.Definition) *Cursor {
	c := &Cursor{
		parts: def.Parts,
		order: make([][]exam.Question, len(def.Parts)),
		where: make(map[int]position, len(def.Questions)),
	}
	for pi, p := range def.Parts {
		qs := def.QuestionsInPart(p.ID)
		c.order[pi] = qs
		for qi, q := range qs {
			c.where[q.ID] = position{part: pi, question: qi}
		}
	}
	return c
}

// Next advances one question, crossing into the next part at a part
// boundary. Returns false at the last question of the last part.
func (c *Cursor) Next() bool {
	p := c.pos
	if p.question+1 < len(c.order[p.part]) {
		c.pos = position{part: p.part, question: p.question + 1}
		return true
	}
	for pi := p.part + 1; pi < len(c.order); pi++ {
		if len(c.order[pi]) > 0 {
			c.pos = position{part: pi, question: 0}
			return true
		}
	}
	return false
}

// Previous moves back one question, crossing into the previous part's
// last question at a part boundary. Returns false at the very first question.
func (c *Cursor) Previous() bool {
	p := c.pos
	if p.question > 0 {
		c.pos = position{part: p.part, question: p.question - 1}
		return true
	}
	for pi := p.part - 1; pi >= 0; pi-- {
		if n := len(c.order[pi]); n > 0 {
			c.pos = position{part: pi, question: n - 1}
			return true
		}
	}
	return false
}

// JumpTo moves to questionID, resolving its owning part.
func (c *Cursor) JumpTo(questionID int) error {
	p, ok := c.where[questionID]
	if !ok {
		return fmt.Errorf("question %d: %w", questionID, ErrInvalidTarget)
	}
	c.pos = p
	return nil
}

// JumpToPart moves to the first question of partID.
func (c *Cursor) JumpToPart(partID string) error {
	for pi, p := range c.parts {
		if p.ID == partID && len(c.order[pi]) > 0 {
			c.pos = position{part: pi, question: 0}
			return nil
		}
	}
	return fmt.Errorf("part %q: %w", partID, ErrInvalidTarget)
}

// CurrentQuestion returns the question under the cursor.
func (c *Cursor) CurrentQuestion() exam.Question {
	return c.order[c.pos.part][c.pos.question]
}

// CurrentPart returns the part under the cursor.
func (c *Cursor) CurrentPart() exam.Part {
	return c.parts[c.pos.part]
}

// Index returns the zero-based part index and the question index within it.
func (c *Cursor) Index() (part, question int) {
	return c.pos.part, c.pos.question
}

// IsFirst reports whether the cursor is at the first question of the exam.
func (c *Cursor) IsFirst() bool {
	probe := *c
	return !probe.Previous()
}

// IsLast reports whether the cursor is at the last question of the exam.
func (c *Cursor) IsLast() bool {
	probe := *c
	return !probe.Next()
}

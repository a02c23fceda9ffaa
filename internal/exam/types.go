package exam

import "sort"

// QuestionType distinguishes listening questions (which carry an audio cue
// window) from reading questions.
type QuestionType string

const (
	TypeListening QuestionType = "listening"
	TypeReading   QuestionType = "reading"
)

// DefaultOptionCount is the option arity used by the bundled content.
const DefaultOptionCount = 4

// Definition is the immutable content of one exam. It is created once by a
// Provider and never mutated afterwards.
type Definition struct {
	Title         string     `json:"title" yaml:"title"`
	TimeLimitSecs int        `json:"time_limit_secs" yaml:"time_limit_secs"`
	Audio         *Track     `json:"audio,omitempty" yaml:"audio,omitempty"`
	Parts         []Part     `json:"parts" yaml:"parts"`
	Questions     []Question `json:"questions" yaml:"questions"`

	byID map[int]int // question ID -> index into Questions
}

// Track describes the shared audio recording used by listening parts.
type Track struct {
	Source       string  `json:"source" yaml:"source"`
	DurationSecs float64 `json:"duration_secs" yaml:"duration_secs"`
}

// Part is a scored section of the exam.
type Part struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	QuestionCount int    `json:"question_count" yaml:"question_count"`
	TimeLimitSecs int    `json:"time_limit_secs" yaml:"time_limit_secs"`
	HasAudio      bool   `json:"has_audio" yaml:"has_audio"`
}

// Question is a single multiple-choice item.
type Question struct {
	ID            int          `json:"id" yaml:"id"`
	PartID        string       `json:"part" yaml:"part"`
	Type          QuestionType `json:"type" yaml:"type"`
	Prompt        string       `json:"prompt" yaml:"prompt"`
	Passage       string       `json:"passage,omitempty" yaml:"passage,omitempty"`
	AudioStart    float64      `json:"audio_start,omitempty" yaml:"audio_start,omitempty"`
	AudioEnd      float64      `json:"audio_end,omitempty" yaml:"audio_end,omitempty"`
	Options       []string     `json:"options" yaml:"options"`
	CorrectAnswer int          `json:"correct_answer" yaml:"correct_answer"`
}

// IsListening reports whether the question plays a cue window.
func (q Question) IsListening() bool {
	return q.Type == TypeListening
}

// ValidOption reports whether idx is a selectable option of q.
func (q Question) ValidOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

// Question returns the question with the given ID.
func (d *Definition) Question(id int) (Question, bool) {
	if d.byID == nil {
		for _, q := range d.Questions {
			if q.ID == id {
				return q, true
			}
		}
		return Question{}, false
	}
	i, ok := d.byID[id]
	if !ok {
		return Question{}, false
	}
	return d.Questions[i], true
}

// Part returns the part with the given ID.
func (d *Definition) Part(id string) (Part, bool) {
	for _, p := range d.Parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// QuestionsInPart returns the questions owned by partID in ascending ID order.
func (d *Definition) QuestionsInPart(partID string) []Question {
	var qs []Question
	for _, q := range d.Questions {
		if q.PartID == partID {
			qs = append(qs, q)
		}
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })
	return qs
}

// TotalQuestions returns the number of questions in the exam.
func (d *Definition) TotalQuestions() int {
	return len(d.Questions)
}

// index builds the ID lookup. It runs once, at the end of a successful
// Validate, so IDs are unique by then.
func (d *Definition) index() {
	d.byID = make(map[int]int, len(d.Questions))
	for i, q := range d.Questions {
		d.byID[q.ID] = i
	}
}

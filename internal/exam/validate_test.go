package exam

import (
	"errors"
	"strings"
	"testing"
)

func validDefinition() *Definition {
	opts := []string{"a", "b", "c", "d"}
	return &Definition{
		Title:         "Test",
		TimeLimitSecs: 600,
		Audio:         &Track{Source: "t.mp3", DurationSecs: 100},
		Parts: []Part{
			{ID: "listening", Title: "Listening", QuestionCount: 1, TimeLimitSecs: 200, HasAudio: true},
			{ID: "reading", Title: "Reading", QuestionCount: 2, TimeLimitSecs: 400},
		},
		Questions: []Question{
			{ID: 1, PartID: "listening", Type: TypeListening, Prompt: "p", AudioStart: 0, AudioEnd: 10, Options: opts, CorrectAnswer: 0},
			{ID: 3, PartID: "reading", Type: TypeReading, Prompt: "p", Options: opts, CorrectAnswer: 3},
			{ID: 2, PartID: "reading", Type: TypeReading, Prompt: "p", Options: opts, CorrectAnswer: 1},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	d := validDefinition()
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, ok := d.Question(3)
	if !ok {
		t.Fatal("expected question 3 after validation")
	}
	if q.CorrectAnswer != 3 {
		t.Errorf("CorrectAnswer = %d, want 3", q.CorrectAnswer)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
		want   string
	}{
		{"missing title", func(d *Definition) { d.Title = "  " }, "title is required"},
		{"zero time limit", func(d *Definition) { d.TimeLimitSecs = 0 }, "time_limit_secs must be > 0"},
		{"dangling part", func(d *Definition) { d.Questions[1].PartID = "writing" }, "nonexistent part"},
		{"duplicate question", func(d *Definition) { d.Questions[2].ID = 3 }, "duplicate question ID: 3"},
		{"duplicate part", func(d *Definition) { d.Parts[1].ID = "listening" }, "duplicate part ID"},
		{"correct out of range", func(d *Definition) { d.Questions[1].CorrectAnswer = 4 }, "not a valid option index"},
		{"negative correct", func(d *Definition) { d.Questions[1].CorrectAnswer = -1 }, "not a valid option index"},
		{"empty cue window", func(d *Definition) { d.Questions[0].AudioEnd = 0 }, "cue window"},
		{"cue past track", func(d *Definition) { d.Questions[0].AudioEnd = 150 }, "past track duration"},
		{"listening without audio", func(d *Definition) { d.Questions[1].Type = TypeListening; d.Questions[1].AudioEnd = 5 }, "without audio"},
		{"unknown type", func(d *Definition) { d.Questions[1].Type = "speaking" }, "unknown type"},
		{"count mismatch", func(d *Definition) { d.Parts[1].QuestionCount = 5 }, "declares 5 questions, found 2"},
		{"part time overflow", func(d *Definition) { d.Parts[1].TimeLimitSecs = 1000 }, "exceeding exam limit"},
		{"arity mismatch", func(d *Definition) { d.Questions[2].Options = []string{"a", "b", "c"} }, "exam arity is 4"},
		{"empty part", func(d *Definition) {
			d.Parts = append(d.Parts, Part{ID: "writing", Title: "Writing"})
		}, `part "writing" has no questions`},
		{"audio part without track", func(d *Definition) { d.Audio = nil }, "declares no audio track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(d)
			err := d.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	d := validDefinition()
	d.Title = ""
	d.Questions[1].CorrectAnswer = 9

	err := d.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("problems = %d, want 2: %v", len(verr.Problems), verr.Problems)
	}
}

func TestQuestionsInPart_AscendingIDs(t *testing.T) {
	d := validDefinition()
	qs := d.QuestionsInPart("reading")
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	if qs[0].ID != 2 || qs[1].ID != 3 {
		t.Errorf("order = [%d %d], want [2 3]", qs[0].ID, qs[1].ID)
	}
}

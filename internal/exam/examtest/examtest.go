// Package examtest provides small, valid exam definitions for tests.
package examtest

import "github.com/abhisek/examiz/internal/exam"

// TwoParts returns a validated exam with two parts: part "A" holds
// questions 1 (correct 0) and 2 (correct 2), part "B" holds question 3
// (correct 1). Part A is a listening part with cue windows; part B is reading.
func TwoParts() *exam.Definition {
	def := &exam.Definition{
		Title:         "Two Part Exam",
		TimeLimitSecs: 300,
		Audio:         &exam.Track{Source: "test.mp3", DurationSecs: 60},
		Parts: []exam.Part{
			{ID: "A", Title: "Listening", QuestionCount: 2, TimeLimitSecs: 120, HasAudio: true},
			{ID: "B", Title: "Reading", QuestionCount: 1, TimeLimitSecs: 180},
		},
		Questions: []exam.Question{
			{ID: 2, PartID: "A", Type: exam.TypeListening, Prompt: "Q2", AudioStart: 20, AudioEnd: 40, Options: options(), CorrectAnswer: 2},
			{ID: 1, PartID: "A", Type: exam.TypeListening, Prompt: "Q1", AudioStart: 5, AudioEnd: 20, Options: options(), CorrectAnswer: 0},
			{ID: 3, PartID: "B", Type: exam.TypeReading, Prompt: "Q3", Passage: "Passage", Options: options(), CorrectAnswer: 1},
		},
	}
	return mustValidate(def)
}

// WithTimeLimit returns TwoParts with the total time budget replaced.
// Part budgets are cleared so short limits stay valid.
func WithTimeLimit(secs int) *exam.Definition {
	def := TwoParts()
	out := &exam.Definition{
		Title:         def.Title,
		TimeLimitSecs: secs,
		Audio:         def.Audio,
		Questions:     def.Questions,
	}
	for _, p := range def.Parts {
		p.TimeLimitSecs = 0
		out.Parts = append(out.Parts, p)
	}
	return mustValidate(out)
}

func options() []string {
	return []string{"alpha", "bravo", "charlie", "delta"}
}

func mustValidate(def *exam.Definition) *exam.Definition {
	if err := def.Validate(); err != nil {
		panic(err)
	}
	return def
}

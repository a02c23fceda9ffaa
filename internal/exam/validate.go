package exam

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a definition.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("exam validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate performs all structural checks on d. Returns a *ValidationError
// describing all problems found, or nil if valid. A valid definition is
// indexed for ID lookup.
func (d *Definition) Validate() error {
	var errs []string

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, "title is required")
	}
	if d.TimeLimitSecs <= 0 {
		errs = append(errs, fmt.Sprintf("time_limit_secs must be > 0, got %d", d.TimeLimitSecs))
	}
	if len(d.Parts) == 0 {
		errs = append(errs, "at least one part is required")
	}
	if d.Audio != nil && d.Audio.DurationSecs <= 0 {
		errs = append(errs, fmt.Sprintf("audio duration_secs must be > 0, got %g", d.Audio.DurationSecs))
	}

	// Check parts.
	parts := make(map[string]Part, len(d.Parts))
	partTime := 0
	for _, p := range d.Parts {
		if p.ID == "" {
			errs = append(errs, "part id is required")
			continue
		}
		if _, dup := parts[p.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate part ID: %q", p.ID))
		}
		parts[p.ID] = p
		if p.TimeLimitSecs < 0 {
			errs = append(errs, fmt.Sprintf("part %q: time_limit_secs must be >= 0, got %d", p.ID, p.TimeLimitSecs))
		}
		partTime += p.TimeLimitSecs
		if p.HasAudio && d.Audio == nil {
			errs = append(errs, fmt.Sprintf("part %q has audio but the exam declares no audio track", p.ID))
		}
	}
	if partTime > d.TimeLimitSecs && d.TimeLimitSecs > 0 {
		errs = append(errs, fmt.Sprintf("part time limits sum to %ds, exceeding exam limit %ds", partTime, d.TimeLimitSecs))
	}

	// Check questions.
	ids := make(map[int]bool, len(d.Questions))
	perPart := make(map[string]int, len(d.Parts))
	for _, q := range d.Questions {
		prefix := fmt.Sprintf("question %d", q.ID)
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		ids[q.ID] = true

		p, ok := parts[q.PartID]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s references nonexistent part %q", prefix, q.PartID))
		}
		perPart[q.PartID]++

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("%s: prompt is required", prefix))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
		}
		if !q.ValidOption(q.CorrectAnswer) {
			errs = append(errs, fmt.Sprintf("%s: correct_answer %d is not a valid option index", prefix, q.CorrectAnswer))
		}

		switch q.Type {
		case TypeListening:
			if ok && !p.HasAudio {
				errs = append(errs, fmt.Sprintf("%s: listening question in part %q without audio", prefix, q.PartID))
			}
			if q.AudioStart < 0 || q.AudioEnd <= q.AudioStart {
				errs = append(errs, fmt.Sprintf("%s: cue window [%g, %g) is empty or negative", prefix, q.AudioStart, q.AudioEnd))
			}
			if d.Audio != nil && q.AudioEnd > d.Audio.DurationSecs {
				errs = append(errs, fmt.Sprintf("%s: cue window ends at %g past track duration %g", prefix, q.AudioEnd, d.Audio.DurationSecs))
			}
		case TypeReading:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown type %q", prefix, q.Type))
		}
	}

	// Uniform arity across the exam.
	if len(d.Questions) > 0 {
		arity := len(d.Questions[0].Options)
		for _, q := range d.Questions[1:] {
			if len(q.Options) != arity {
				errs = append(errs, fmt.Sprintf("question %d: has %d options, exam arity is %d", q.ID, len(q.Options), arity))
			}
		}
	}

	// Check every part is populated and its declared count matches.
	for _, p := range d.Parts {
		n := perPart[p.ID]
		if n == 0 {
			errs = append(errs, fmt.Sprintf("part %q has no questions", p.ID))
			continue
		}
		if p.QuestionCount != 0 && p.QuestionCount != n {
			errs = append(errs, fmt.Sprintf("part %q declares %d questions, found %d", p.ID, p.QuestionCount, n))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	d.index()
	return nil
}

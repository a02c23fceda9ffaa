package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/scoring"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/theme"
)

const timeFormat = "2006-01-02 15:04:05"

// printOutcome writes a styled report of o. Colors are downsampled to
// what w supports, so redirected output is plain text.
func printOutcome(w io.Writer, o *session.Outcome) {
	res := o.Result

	var b strings.Builder
	b.WriteString(theme.Title.Render(o.ExamTitle))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("session %s  ·  %s  ·  submitted by %s",
		o.SessionID, o.SubmittedAt.Local().Format(timeFormat), o.Trigger)))
	b.WriteString("\n\n")

	verdict := theme.Incorrect.Render("NOT PASSED")
	if res.Passed() {
		verdict = theme.Correct.Render("PASS")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n",
		theme.Subtitle.Render(fmt.Sprintf("%d%%", res.Overall.Percentage)),
		theme.Body.Render(res.Band.Name),
		verdict)
	fmt.Fprintf(&b, "%s  %s  %s   accuracy %d%%   time %s\n\n",
		theme.Correct.Render(fmt.Sprintf("✓ %d", res.Overall.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d", res.Overall.Incorrect)),
		theme.Skipped.Render(fmt.Sprintf("– %d", res.Overall.Unanswered)),
		res.Overall.Accuracy,
		layout.FormatClock(o.ElapsedSecs))

	b.WriteString(partsTable(res, o.PartElapsedSecs).String())
	b.WriteString("\n\n")
	b.WriteString(questionsTable(res).String())

	lipgloss.Fprintln(w, b.String())
}

func partsTable(res *scoring.Result, elapsed map[string]int) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Part", "Title", "Score", "✓", "✗", "–", "Time")
	for _, p := range res.Parts {
		t.Row(p.PartID, p.Title,
			fmt.Sprintf("%d%%", p.Percentage),
			fmt.Sprint(p.Correct), fmt.Sprint(p.Incorrect), fmt.Sprint(p.Unanswered),
			layout.FormatClock(elapsed[p.PartID]))
	}
	return t.StyleFunc(headerStyle)
}

func questionsTable(res *scoring.Result) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Q", "Part", "Answer", "Correct", "Result")
	for _, q := range res.Questions {
		answer := "–"
		if q.Selected >= 0 {
			answer = components.OptionLabel(q.Selected)
		}
		t.Row(fmt.Sprint(q.QuestionID), q.PartID, answer,
			components.OptionLabel(q.CorrectAnswer), string(q.Classification))
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow || col != 4 || row >= len(res.Questions) {
			return headerStyle(row, col)
		}
		switch res.Questions[row].Classification {
		case scoring.Correct:
			return theme.Correct.Padding(0, 1)
		case scoring.Incorrect:
			return theme.Incorrect.Padding(0, 1)
		default:
			return theme.Skipped.Padding(0, 1)
		}
	})
}

func headerStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

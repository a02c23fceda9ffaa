// Package results renders a submitted outcome: the overall score and band,
// a bar per part and a per-question table that can open a read-only review.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/scoring"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// ResultsScreen displays one outcome.
type ResultsScreen struct {
	outcome *session.Outcome

	// def supplies prompts for the review pane. It is nil when the outcome
	// was loaded from history.
	def *exam.Definition

	passMark int

	selected  int
	offset    int
	reviewing bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. def may be nil.
func New(outcome *session.Outcome, def *exam.Definition) *ResultsScreen {
	return &ResultsScreen{outcome: outcome, def: def, passMark: scoring.DefaultBands().PassMark()}
}

// WithBands tints part bars against the pass mark of bands.
func (s *ResultsScreen) WithBands(bands scoring.Bands) *ResultsScreen {
	if len(bands) > 0 {
		s.passMark = bands.PassMark()
	}
	return s
}

// PassMark is the percentage below which part bars are tinted.
func (s *ResultsScreen) PassMark() int {
	return s.passMark
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{
			{Key: "←→", Description: "Prev/Next"},
			{Key: "Enter", Description: "Close"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Questions"}}
	if s.def != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Review"})
	}
	return append(hints,
		layout.KeyHint{Key: "H", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ResultsScreen) questions() []scoring.QuestionResult {
	if s.outcome == nil || s.outcome.Result == nil {
		return nil
	}
	return s.outcome.Result.Questions
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	n := len(s.questions())
	switch kmsg.String() {
	case "h":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "up", "k", "left":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j", "right":
		if s.selected < n-1 {
			s.selected++
		}
	case "enter":
		if s.def != nil && n > 0 {
			s.reviewing = !s.reviewing
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.outcome == nil || s.outcome.Result == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  No result to show.")
	}
	if s.reviewing {
		return s.renderReview(width)
	}

	cw := components.ContentWidth(width)
	sections := []string{
		components.ArcadeCard(s.renderScore(), cw),
		s.renderParts(cw),
	}
	top := strings.Join(sections, "\n\n")

	rows := height - lipgloss.Height(top) - 4
	table := s.renderTable(cw, rows)

	content := top + "\n\n" + table
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *ResultsScreen) renderScore() string {
	o := s.outcome
	r := o.Result

	verdict := theme.Correct.Render("PASS")
	if !r.Passed() {
		verdict = theme.Incorrect.Render("NOT PASSED")
	}

	how := "Submitted"
	if o.Trigger == session.TriggerExpiry {
		how = "Time expired"
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.ExamTitle),
		"",
		lipgloss.NewStyle().Foreground(theme.BannerYellow).Bold(true).
			Render(fmt.Sprintf("%d%%  ·  %s", r.Overall.Percentage, r.Band.Name)),
		verdict,
		"",
		fmt.Sprintf("%s %d   %s %d   %s %d",
			theme.Correct.Render("✓"), r.Overall.Correct,
			theme.Incorrect.Render("✗"), r.Overall.Incorrect,
			theme.Skipped.Render("–"), r.Overall.Unanswered),
		theme.Hint.Render(fmt.Sprintf("accuracy on answered %d%%  ·  %s after %s",
			r.Overall.Accuracy, how, layout.FormatClock(o.ElapsedSecs))),
	}
	return strings.Join(lines, "\n")
}

func (s *ResultsScreen) renderParts(cw int) string {
	var lines []string
	for _, p := range s.outcome.Result.Parts {
		label := fmt.Sprintf("%-3s %-14s %d/%d", p.PartID, truncate(p.Title, 14), p.Correct, p.Total)
		bar := components.NewProgressBar(label, float64(p.Percentage)/100, true, cw)
		if p.Percentage < s.passMark {
			bar = bar.WithFill(theme.Warning)
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func (s *ResultsScreen) renderTable(cw, rows int) string {
	qs := s.questions()
	if rows < 3 {
		rows = 3
	}

	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%-5s %-5s %-6s %-6s %s", "Q", "Part", "Yours", "Key", "")))
	b.WriteString("\n")

	end := s.offset + rows
	if end > len(qs) {
		end = len(qs)
	}
	for i := s.offset; i < end; i++ {
		b.WriteString(s.renderRow(i, qs[i], cw))
		b.WriteString("\n")
	}
	if end < len(qs) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d more", len(qs)-end)))
	}
	return b.String()
}

func (s *ResultsScreen) renderRow(i int, q scoring.QuestionResult, cw int) string {
	yours := "–"
	if q.Selected >= 0 {
		yours = components.OptionLabel(q.Selected)
	}

	var mark string
	var style lipgloss.Style
	switch q.Classification {
	case scoring.Correct:
		mark, style = "✓", theme.Correct
	case scoring.Incorrect:
		mark, style = "✗", theme.Incorrect
	default:
		mark, style = "–", theme.Skipped
	}

	prefix := "  "
	if i == s.selected {
		prefix = "▸ "
	}
	line := fmt.Sprintf("%s%-3d %-5s %-6s %-6s %s",
		prefix, q.QuestionID, q.PartID, yours, components.OptionLabel(q.CorrectAnswer), style.Render(mark))

	if s.def != nil {
		if dq, ok := s.def.Question(q.QuestionID); ok {
			room := cw - lipgloss.Width(line) - 2
			if room > 8 {
				line += "  " + theme.Hint.Render(truncate(dq.Prompt, room))
			}
		}
	}
	if i == s.selected {
		return theme.Selected.Render(line)
	}
	return line
}

func (s *ResultsScreen) renderReview(width int) string {
	qr := s.questions()[s.selected]
	q, ok := s.def.Question(qr.QuestionID)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d  ·  Part %s", q.ID, q.PartID)))
	b.WriteString("\n\n")
	if q.Passage != "" {
		b.WriteString(theme.Passage.Width(width - 8).Render(q.Passage))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width - 4).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(components.NewReviewList(q.Options, qr.Selected, qr.CorrectAnswer).View())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

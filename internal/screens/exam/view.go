package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/media"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

func (s *ExamScreen) Title() string {
	if s.ctrl == nil {
		return "Exam"
	}
	def := s.ctrl.Definition()
	if s.ctrl.Phase() == session.PhaseNotStarted {
		return def.Title
	}
	part, _ := def.Part(s.ctrl.State().PartID)
	return fmt.Sprintf("Part %s · %s", part.ID, part.Title)
}

// Status shows the remaining time and answered count once the clock runs.
func (s *ExamScreen) Status() string {
	if s.ctrl == nil || s.ctrl.Phase() == session.PhaseNotStarted {
		return ""
	}
	st := s.ctrl.State()
	clock := theme.ClockStyle(st.Remaining).Render("⏱ " + layout.FormatClock(st.Remaining))
	answered := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d answered  ", st.Answered, st.Total))
	return answered + clock
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.ctrl == nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.ctrl.Phase() == session.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep working"},
		}
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Tab", Description: "Part"},
		{Key: "F", Description: "Flag"},
	}
	if s.ctrl.CurrentQuestion().IsListening() {
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Play"},
			layout.KeyHint{Key: "R", Description: "Replay"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "G", Description: "Go to"},
		layout.KeyHint{Key: "S", Description: "Submit"},
	)
}

func (s *ExamScreen) View(width, height int) string {
	if s.ctrl == nil {
		return renderError(width, s.errMsg)
	}
	switch s.ctrl.Phase() {
	case session.PhaseNotStarted:
		return s.renderBriefing(width, height)
	case session.PhaseInProgress:
	default:
		return renderSubmitting(width)
	}
	if s.confirming {
		return s.renderSubmitConfirm(width)
	}
	return s.renderQuestion(width)
}

func (s *ExamScreen) renderBriefing(width, height int) string {
	def := s.ctrl.Definition()

	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(def.Title),
		"",
		theme.Body.Render(fmt.Sprintf("%d questions  ·  %s", def.TotalQuestions(), layout.FormatClock(def.TimeLimitSecs))),
		"",
	)
	for _, p := range def.Parts {
		line := fmt.Sprintf("Part %s  %-20s %3d questions", p.ID, p.Title, p.QuestionCount)
		if p.TimeLimitSecs > 0 {
			line += "  ~" + layout.FormatClock(p.TimeLimitSecs)
		}
		if p.HasAudio {
			line += "  ♪"
		}
		lines = append(lines, theme.Body.Render(line))
	}
	lines = append(lines,
		"",
		theme.Hint.Render("The clock starts when you begin and the exam submits itself when it runs out."),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Press Enter to begin"),
	)

	card := components.ArcadeCard(strings.Join(lines, "\n"), components.ContentWidth(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ExamScreen) renderQuestion(width int) string {
	s.syncOptions()
	st := s.ctrl.State()
	q := s.ctrl.CurrentQuestion()
	inner := width - 4

	var b strings.Builder

	// Position line.
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d", q.ID))
	right := ""
	if s.ctrl.IsFlagged(q.ID) {
		right = theme.Flagged.Render("⚑ flagged")
	}
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")
	b.WriteString("  " + s.renderPalette(st))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(inner, 0))))
	b.WriteString("\n\n")

	if q.IsListening() {
		b.WriteString("  " + renderAudio(st.Audio, inner-2))
		b.WriteString("\n\n")
	}
	if q.Passage != "" {
		b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(theme.Passage.Width(inner - 4).Render(q.Passage)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		MarginLeft(2).
		Width(inner - 2).
		Render(q.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(s.options.View()))

	if s.jumping {
		b.WriteString("\n  ")
		b.WriteString(theme.Body.Render("Go to question: "))
		b.WriteString(s.jump.View())
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// renderPalette lists the current part's questions: the current one in
// brackets, answered ones highlighted, flagged ones marked.
func (s *ExamScreen) renderPalette(st session.State) string {
	def := s.ctrl.Definition()
	var cells []string
	for _, q := range def.QuestionsInPart(st.PartID) {
		label := fmt.Sprintf("%d", q.ID)
		if s.ctrl.IsFlagged(q.ID) {
			label += "⚑"
		}
		if q.ID == st.QuestionID {
			label = "[" + label + "]"
		}

		var style lipgloss.Style
		switch {
		case q.ID == st.QuestionID:
			style = theme.Selected
		case s.answered(q.ID):
			style = theme.Chosen
		default:
			style = theme.Skipped
		}
		cells = append(cells, style.Render(label))
	}
	return strings.Join(cells, " ")
}

func (s *ExamScreen) answered(id int) bool {
	_, ok := s.ctrl.AnswerFor(id)
	return ok
}

// renderAudio draws the cue window of the active listening question.
func renderAudio(a media.Status, width int) string {
	if !a.Active {
		return theme.Hint.Render("♪ no audio cued")
	}
	icon := "▶"
	state := "paused"
	if a.Playing {
		icon = "❚❚"
		state = "playing"
	}

	span := a.CueEnd - a.CueStart
	progress := 0.0
	if span > 0 {
		progress = (a.Position - a.CueStart) / span
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	label := fmt.Sprintf("♪ %s %-7s %s / %s", icon, state,
		layout.FormatClock(int(a.Position)), layout.FormatClock(int(a.CueEnd)))
	return components.NewProgressBar(label, progress, false, width).WithFill(theme.Primary).View()
}

func (s *ExamScreen) renderSubmitConfirm(width int) string {
	st := s.ctrl.State()
	var b strings.Builder
	b.WriteString("\n\n\n")

	center := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Submit your exam?")
	center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%d of %d answered, %d flagged, %s left.",
			st.Answered, st.Total, st.Flagged, layout.FormatClock(st.Remaining)))
	if unanswered := st.Total - st.Answered; unanswered > 0 {
		center(lipgloss.NewStyle().Foreground(theme.Warning),
			fmt.Sprintf("%d unanswered questions will be marked wrong.", unanswered))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.confirm.View()))

	return b.String()
}

func renderSubmitting(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Scoring your answers...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

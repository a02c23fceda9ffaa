package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/scoring"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/results"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Results []store.ResultRecord
	Err     error
}

type resultLoadedMsg struct {
	Record *store.ResultRecord
	Err    error
}

// HistoryScreen lists stored results and opens one in the results screen.
type HistoryScreen struct {
	repo     store.ResultRepo
	events   store.EventRepo // optional, for the answer-change count
	bands    scoring.Bands
	results  []store.ResultRecord
	changes  map[string]int // session ID -> answer events
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. events may be nil.
func New(repo store.ResultRepo, events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		events:   events,
		changes:  make(map[string]int),
		expanded: make(map[int]bool),
	}
}

// WithBands grades opened results against bands instead of the defaults.
func (s *HistoryScreen) WithBands(bands scoring.Bands) *HistoryScreen {
	s.bands = bands
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.repo.List(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Results: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "Space", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case resultLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := results.New(msg.Record.Outcome, nil).WithBands(s.bands)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
			s.loadChanges()
			return s, nil
		case "enter":
			return s, s.open()
		}
	}
	return s, nil
}

// open fetches the full outcome of the selected result.
func (s *HistoryScreen) open() tea.Cmd {
	if s.selected >= len(s.results) {
		return nil
	}
	id := s.results[s.selected].SessionID
	return func() tea.Msg {
		rec, err := s.repo.Get(context.Background(), id)
		return resultLoadedMsg{Record: rec, Err: err}
	}
}

func (s *HistoryScreen) loadChanges() {
	if s.events == nil || s.selected >= len(s.results) {
		return
	}
	id := s.results[s.selected].SessionID
	if _, ok := s.changes[id]; ok {
		return
	}
	evs, err := s.events.AnswerEvents(context.Background(), id)
	if err != nil {
		return
	}
	s.changes[id] = len(evs)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading results...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take an exam first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		dateStr := r.SubmittedAt.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		verdict := "pass"
		if !r.Passed {
			verdict = "fail"
		}

		line := fmt.Sprintf("%s%s  %-24s %3d%%  %-18s %s",
			prefix, dateStr, truncate(r.ExamTitle, 24), r.Percentage, r.Band, verdict)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d correct · %d incorrect · %d blank · accuracy %d%% · %s · %s",
				r.Correct, r.Incorrect, r.Unanswered, r.Accuracy,
				layout.FormatClock(r.ElapsedSecs), triggerText(r.Trigger))
			if n, ok := s.changes[r.SessionID]; ok {
				detail += fmt.Sprintf(" · %d selections", n)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func triggerText(t string) string {
	if t == "expiry" {
		return "time expired"
	}
	return "submitted"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

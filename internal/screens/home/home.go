package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	examscreen "github.com/abhisek/examiz/internal/screens/exam"
	"github.com/abhisek/examiz/internal/screens/history"
	"github.com/abhisek/examiz/internal/screens/placeholder"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/components"
)

// Options wires the home screen. Results and Events may be nil when no
// database is available.
type Options struct {
	Exam    examscreen.Deps
	Results store.ResultRepo
	Events  store.EventRepo
}

type statsLoadedMsg struct {
	Last  *store.ResultRecord
	Taken int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	info   *examInfo
	last   *store.ResultRecord
	taken  int
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	if def := opts.Exam.Definition; def != nil {
		h.info = &examInfo{Title: def.Title, Questions: def.TotalQuestions(), LimitSecs: def.TimeLimitSecs}
	}

	items := []components.MenuItem{
		{Label: "START EXAM", Key: "s", Disabled: h.info == nil, Action: func() tea.Cmd {
			next := examscreen.New(opts.Exam)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "PAST RESULTS", Key: "h", Action: func() tea.Cmd {
			if opts.Results == nil {
				next := placeholder.New("Past Results", "Results are not being saved.\nStart examiz with a writable --db to keep them.")
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
			next := history.New(opts.Results, opts.Events).WithBands(opts.Exam.Scoring.Bands)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the last result after an exam or history visit.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.List(context.Background(), store.QueryOpts{})
		if err != nil || len(recs) == 0 {
			return statsLoadedMsg{}
		}
		last := recs[0]
		return statsLoadedMsg{Last: &last, Taken: len(recs)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.last = msg.Last
		h.taken = msg.Taken
		switch {
		case h.last == nil:
			h.mascot = MascotIdle
		case h.last.Passed:
			h.mascot = MascotCelebrating
		default:
			h.mascot = MascotAlert
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.info, h.last, h.taken, cw, compact))
	sections = append(sections, renderMenu(h.menu, cw, compact))

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	if h.info != nil {
		return h.info.Title
	}
	return "Home"
}

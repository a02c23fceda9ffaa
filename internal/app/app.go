package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	examscreen "github.com/abhisek/examiz/internal/screens/exam"
	"github.com/abhisek/examiz/internal/screens/home"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Exam carries the loaded definition and the session collaborators.
	Exam examscreen.Deps

	// Results and Events back the history screen. Both may be nil.
	Results store.ResultRepo
	Events  store.EventRepo

	// TakeNow opens the exam briefing on top of the home screen.
	TakeNow bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initial tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Options{
		Exam:    opts.Exam,
		Results: opts.Results,
		Events:  opts.Events,
	})
	m := AppModel{router: router.New(homeScreen)}

	cmds := []tea.Cmd{homeScreen.Init()}
	if opts.TakeNow && opts.Exam.Definition != nil {
		cmds = append(cmds, m.router.Push(examscreen.New(opts.Exam)))
	}
	m.initial = tea.Batch(cmds...)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initial
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ec, ok := m.router.Active().(screen.EscapeCapturer); ok && ec.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// Package exam is the exam-taking screen. It observes a session.Controller
// and turns key presses and ticks into controller calls; all exam state
// lives in the controller.
package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/media"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/scoring"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/results"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
)

// Deps are the collaborators of an exam run.
type Deps struct {
	Definition *ex.Definition
	Sink       session.ResultSink
	Journal    session.Journal
	Scoring    scoring.Config
	Media      media.Config
	Logger     *zerolog.Logger
}

// ExamScreen implements screen.Screen for a single exam session.
type ExamScreen struct {
	deps  Deps
	ctrl  *session.Controller
	track *media.VirtualTrack // nil when the exam has no audio

	options    components.OptionList
	optionsFor int

	jumping bool
	jump    components.TextInput

	confirming bool
	confirm    components.ButtonRow

	errMsg string
	notice string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)
var _ screen.EscapeCapturer = (*ExamScreen)(nil)

// New builds the controller for deps.Definition. A definition the
// controller refuses is shown as an error instead of an exam.
func New(deps Deps) *ExamScreen {
	s := &ExamScreen{
		deps:       deps,
		optionsFor: -1,
		jump:       components.NewTextInput("question #", true, 4),
	}

	opts := session.Options{
		Media:   deps.Media,
		Scoring: deps.Scoring,
		Sink:    deps.Sink,
		Journal: deps.Journal,
		Logger:  deps.Logger,
	}
	if deps.Definition != nil && deps.Definition.Audio != nil {
		s.track = media.NewVirtualTrack(deps.Definition.Audio.DurationSecs)
		opts.Backend = s.track
	}

	ctrl, err := session.New(deps.Definition, opts)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.ctrl = ctrl
	return s
}

// Controller exposes the session for callers that observe the run.
func (s *ExamScreen) Controller() *session.Controller {
	return s.ctrl
}

func (s *ExamScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case mediaTickMsg:
		return s.handleMediaTick()

	case finishedMsg:
		return s, s.showResults(msg.Outcome)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) inProgress() bool {
	return s.ctrl != nil && s.ctrl.Phase() == session.PhaseInProgress
}

func (s *ExamScreen) mediaInterval() time.Duration {
	if s.deps.Media.TickInterval > 0 {
		return s.deps.Media.TickInterval
	}
	return media.DefaultConfig().TickInterval
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func mediaTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return mediaTickMsg(t)
	})
}

func finished(o *session.Outcome) tea.Cmd {
	return func() tea.Msg { return finishedMsg{Outcome: o} }
}

func (s *ExamScreen) start() tea.Cmd {
	s.ctrl.Start()
	cmds := []tea.Cmd{tickCmd()}
	if s.track != nil {
		cmds = append(cmds, mediaTickCmd(s.mediaInterval()))
	}
	return tea.Batch(cmds...)
}

// handleTimerTick advances the clock. Ticking stops once the session
// leaves InProgress; expiry hands over to the results.
func (s *ExamScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if !s.inProgress() {
		return s, nil
	}
	if o := s.ctrl.Tick(); o != nil {
		return s, finished(o)
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleMediaTick() (screen.Screen, tea.Cmd) {
	if s.track == nil || !s.inProgress() {
		return s, nil
	}
	interval := s.mediaInterval()
	for _, ev := range s.track.Advance(interval) {
		s.ctrl.HandleMediaEvent(ev)
	}
	return s, mediaTickCmd(interval)
}

func (s *ExamScreen) showResults(o *session.Outcome) tea.Cmd {
	if o == nil {
		return nil
	}
	next := results.New(o, s.deps.Definition).WithBands(s.deps.Scoring.Bands)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ExamScreen) submit() tea.Cmd {
	s.confirming = false
	o, err := s.ctrl.Submit()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	return finished(o)
}

func (s *ExamScreen) openConfirm() {
	s.confirming = true
	s.confirm = components.NewButtonRow(
		components.NewButton("Submit", false, s.submit),
		components.NewButton("Keep working", false, func() tea.Cmd {
			s.confirming = false
			return nil
		}),
	)
}

func (s *ExamScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.ctrl == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.ctrl.Phase() {
	case session.PhaseNotStarted:
		switch key {
		case "enter", "space":
			return s, s.start()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	case session.PhaseInProgress:
	default:
		return s, nil
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			return s, s.submit()
		case "n", "N", "esc":
			s.confirming = false
			return s, nil
		}
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}

	if s.jumping {
		return s.handleJumpKey(msg)
	}

	s.notice = ""
	q := s.ctrl.CurrentQuestion()

	switch key {
	case "n", "right":
		s.navigate(session.NextQuestion())
	case "p", "left":
		s.navigate(session.PreviousQuestion())
	case "tab":
		s.stepPart(1)
	case "shift+tab":
		s.stepPart(-1)
	case "f":
		if _, err := s.ctrl.ToggleFlag(q.ID); err != nil {
			s.notice = err.Error()
		}
	case "space":
		s.ctrl.ToggleAudio()
	case "r":
		s.ctrl.ReplayAudio()
	case "g":
		s.jumping = true
		s.jump.Reset()
		return s, s.jump.Init()
	case "s", "esc":
		s.openConfirm()
	default:
		s.syncOptions()
		var picked int
		s.options, picked = s.options.Update(msg)
		if picked >= 0 {
			if err := s.ctrl.SelectAnswer(q.ID, picked); err != nil {
				s.notice = err.Error()
			}
		}
	}
	return s, nil
}

func (s *ExamScreen) handleJumpKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jumping = false
		return s, nil
	case "enter":
		id, err := s.jump.NumericValue()
		if err == nil {
			err = s.ctrl.GoTo(session.QuestionTarget(id))
		}
		if err != nil {
			s.jump.Submit(false)
			return s, nil
		}
		s.jumping = false
		return s, nil
	}
	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

func (s *ExamScreen) navigate(t session.Target) {
	if err := s.ctrl.GoTo(t); err != nil {
		s.notice = err.Error()
	}
}

// stepPart moves to the first question of the neighbouring part.
func (s *ExamScreen) stepPart(delta int) {
	parts := s.ctrl.Definition().Parts
	idx := s.ctrl.State().PartIndex + delta
	if idx < 0 || idx >= len(parts) {
		return
	}
	s.navigate(session.PartTarget(parts[idx].ID))
}

// syncOptions rebuilds the option list when the cursor moved.
func (s *ExamScreen) syncOptions() {
	q := s.ctrl.CurrentQuestion()
	if q.ID == s.optionsFor {
		return
	}
	chosen := -1
	if a, ok := s.ctrl.AnswerFor(q.ID); ok {
		chosen = a
	}
	s.options = components.NewOptionList(q.Options, chosen)
	s.optionsFor = q.ID
}

// CapturesEscape keeps Esc from popping the screen mid-exam; it opens the
// submit dialog instead.
func (s *ExamScreen) CapturesEscape() bool {
	return s.inProgress()
}

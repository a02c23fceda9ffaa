// Package session runs a timed, multi-part exam from start to a single
// scored outcome.
//
// A Controller owns the clock, the navigation cursor, the media cue player,
// the answer ledger and the flag set. Every input (clock ticks, media
// events, user actions) goes through the controller, and every mutation is
// ignored once the session has left PhaseInProgress.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/examiz/internal/clock"
	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/ledger"
	"github.com/abhisek/examiz/internal/media"
	"github.com/abhisek/examiz/internal/navigation"
	"github.com/abhisek/examiz/internal/scoring"
)

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// SessionID identifies the session. A UUID is generated when empty.
	SessionID string

	// Backend is the audio backend driven by the cue player. A no-op
	// backend is used when nil.
	Backend media.Backend

	// Media is used as given except for a zero TickInterval, which takes
	// the default.
	Media media.Config

	// Scoring bands must pass Bands.Validate. Empty bands select the
	// defaults.
	Scoring scoring.Config

	Sink    ResultSink
	Journal Journal

	// Logger receives controller logs. Logging is disabled when nil.
	Logger *zerolog.Logger

	// Now returns the wall clock time. Defaults to time.Now.
	Now func() time.Time
}

// Controller is the session state machine.
type Controller struct {
	mu sync.Mutex

	def   *exam.Definition
	id    string
	phase Phase

	clock   clock.Countdown
	cursor  *navigation.Cursor
	player  *media.Player
	answers *ledger.Ledger
	flags   *ledger.FlagSet
	bands   scoring.Bands

	sink    ResultSink
	journal Journal
	log     zerolog.Logger
	now     func() time.Time

	startedAt   time.Time
	elapsed     int
	partElapsed map[string]int
	outcome     *Outcome
}

// New validates def and builds a controller in PhaseNotStarted.
func New(def *exam.Definition, opts Options) (*Controller, error) {
	if def == nil {
		return nil, fmt.Errorf("new session: nil exam definition")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	if opts.SessionID == "" {
		opts.SessionID = uuid.New().String()
	}
	if opts.Backend == nil {
		opts.Backend = nopBackend{}
	}
	if opts.Media.TickInterval <= 0 {
		opts.Media.TickInterval = media.DefaultConfig().TickInterval
	}
	if len(opts.Scoring.Bands) == 0 {
		opts.Scoring = scoring.DefaultConfig()
	}
	if err := opts.Scoring.Bands.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Controller{
		def:         def,
		id:          opts.SessionID,
		cursor:      navigation.New(def),
		player:      media.NewPlayer(opts.Backend, opts.Media),
		answers:     ledger.New(),
		flags:       ledger.NewFlagSet(),
		bands:       opts.Scoring.Bands,
		sink:        opts.Sink,
		journal:     opts.Journal,
		log:         log.With().Str("component", "session").Str("session_id", opts.SessionID).Logger(),
		now:         opts.Now,
		partElapsed: make(map[string]int, len(def.Parts)),
	}, nil
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Definition returns the exam content. It must not be modified.
func (c *Controller) Definition() *exam.Definition { return c.def }

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start runs the clock with the exam's total budget and cues the first
// question. No-op unless the session has not started yet.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.phase != PhaseNotStarted {
		c.mu.Unlock()
		c.log.Debug().Str("phase", c.Phase().String()).Msg("start ignored")
		return
	}
	c.clock.Start(c.def.TimeLimitSecs)
	c.player.CueTo(c.cursor.CurrentQuestion())
	c.startedAt = c.now()
	c.phase = PhaseInProgress
	// Journal under the lock so no answer event can precede "start".
	if c.journal != nil {
		ev := SessionEvent{
			SessionID: c.id,
			ExamTitle: c.def.Title,
			Action:    "start",
			Total:     c.def.TotalQuestions(),
		}
		if err := c.journal.AppendSessionEvent(context.Background(), ev); err != nil {
			c.log.Error().Err(err).Msg("journal session start")
		}
	}
	c.mu.Unlock()

	c.log.Info().
		Str("exam", c.def.Title).
		Int("time_limit_secs", c.def.TimeLimitSecs).
		Msg("session started")
}

// Tick advances the clock by one second and accrues time to the current
// part. It returns the Outcome when this tick expired the clock and
// submitted the session, nil otherwise. Ticks outside PhaseInProgress are
// dropped.
func (c *Controller) Tick() *Outcome {
	c.mu.Lock()
	if c.phase != PhaseInProgress {
		c.mu.Unlock()
		return nil
	}
	c.elapsed++
	c.partElapsed[c.cursor.CurrentPart().ID]++
	if !c.clock.Tick() {
		c.mu.Unlock()
		return nil
	}
	o := c.finishLocked(TriggerExpiry)
	c.mu.Unlock()

	c.deliver(o)
	return o
}

// Submit ends the session and returns its Outcome. Repeat calls, and calls
// racing clock expiry, return the one Outcome already produced.
func (c *Controller) Submit() (*Outcome, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseNotStarted:
		c.mu.Unlock()
		return nil, ErrNotStarted
	case PhaseSubmitting, PhaseSubmitted:
		o := c.outcome
		c.mu.Unlock()
		c.log.Debug().Msg("duplicate submit absorbed")
		return o, nil
	}
	o := c.finishLocked(TriggerUser)
	c.mu.Unlock()

	c.deliver(o)
	return o, nil
}

// finishLocked performs the single InProgress -> Submitted transition.
// c.mu must be held.
func (c *Controller) finishLocked(trigger Trigger) *Outcome {
	c.phase = PhaseSubmitting
	c.player.Pause()

	entries := c.answers.Entries()
	res := scoring.Score(c.def, entries, c.bands)

	partElapsed := make(map[string]int, len(c.partElapsed))
	for id, secs := range c.partElapsed {
		partElapsed[id] = secs
	}

	o := &Outcome{
		SessionID:       c.id,
		ExamTitle:       c.def.Title,
		Trigger:         trigger,
		StartedAt:       c.startedAt,
		SubmittedAt:     c.now(),
		ElapsedSecs:     c.elapsed,
		PartElapsedSecs: partElapsed,
		Total:           c.def.TotalQuestions(),
		Answered:        len(entries),
		Answers:         entries,
		Flagged:         c.flags.IDs(),
		Result:          res,
	}
	c.outcome = o
	c.phase = PhaseSubmitted
	return o
}

// deliver journals the submission and hands o to the sink. Failures are
// logged and never change the phase. Called without c.mu held.
func (c *Controller) deliver(o *Outcome) {
	c.log.Info().
		Str("trigger", string(o.Trigger)).
		Int("answered", o.Answered).
		Int("total", o.Total).
		Int("percentage", o.Result.Overall.Percentage).
		Str("band", o.Result.Band.Name).
		Msg("session submitted")

	ctx := context.Background()
	if c.journal != nil {
		ev := SessionEvent{
			SessionID:   o.SessionID,
			ExamTitle:   o.ExamTitle,
			Action:      "submit",
			Trigger:     o.Trigger,
			Answered:    o.Answered,
			Total:       o.Total,
			ElapsedSecs: o.ElapsedSecs,
		}
		if err := c.journal.AppendSessionEvent(ctx, ev); err != nil {
			c.log.Error().Err(err).Msg("journal session submit")
		}
	}
	if c.sink != nil {
		if err := c.sink.Deliver(ctx, o); err != nil {
			c.log.Error().Err(err).Msg("deliver outcome")
		}
	}
}

// SelectAnswer records option for questionID. It fails with
// ErrUnknownQuestion or ErrInvalidOption and leaves the ledger unchanged.
// Outside PhaseInProgress it is a silent no-op.
func (c *Controller) SelectAnswer(questionID, option int) error {
	c.mu.Lock()
	if !c.activeLocked("select answer") {
		c.mu.Unlock()
		return nil
	}
	q, ok := c.def.Question(questionID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("question %d: %w", questionID, ErrUnknownQuestion)
	}
	if !q.ValidOption(option) {
		c.mu.Unlock()
		return fmt.Errorf("question %d option %d: %w", questionID, option, ErrInvalidOption)
	}
	c.answers.Record(questionID, option)

	// The answer is journaled before the lock is released, so it always
	// precedes the submit event of the outcome that counts it.
	if c.journal != nil {
		ev := AnswerEvent{SessionID: c.id, QuestionID: q.ID, PartID: q.PartID, Option: option}
		if err := c.journal.AppendAnswerEvent(context.Background(), ev); err != nil {
			c.log.Error().Err(err).Int("question_id", q.ID).Msg("journal answer")
		}
	}
	c.mu.Unlock()
	return nil
}

// ToggleFlag flips the review flag on questionID and returns the new state.
func (c *Controller) ToggleFlag(questionID int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked("toggle flag") {
		return c.flags.IsFlagged(questionID), nil
	}
	if _, ok := c.def.Question(questionID); !ok {
		return false, fmt.Errorf("question %d: %w", questionID, ErrUnknownQuestion)
	}
	return c.flags.Toggle(questionID), nil
}

// GoTo moves the cursor and cues the player to the new current question.
// Next at the last question and Previous at the first are no-ops.
func (c *Controller) GoTo(t Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked("navigate") {
		return nil
	}

	var moved bool
	switch t.Kind {
	case TargetNext:
		moved = c.cursor.Next()
	case TargetPrevious:
		moved = c.cursor.Previous()
	case TargetQuestion:
		if err := c.cursor.JumpTo(t.QuestionID); err != nil {
			return err
		}
		moved = true
	case TargetPart:
		if err := c.cursor.JumpToPart(t.PartID); err != nil {
			return err
		}
		moved = true
	default:
		return fmt.Errorf("target kind %d: %w", t.Kind, ErrInvalidTarget)
	}
	if moved {
		c.player.CueTo(c.cursor.CurrentQuestion())
	}
	return nil
}

// PlayAudio starts the current question's cue.
func (c *Controller) PlayAudio() {
	c.withPlayer("play audio", (*media.Player).Play)
}

// PauseAudio pauses playback.
func (c *Controller) PauseAudio() {
	c.withPlayer("pause audio", (*media.Player).Pause)
}

// ToggleAudio switches between play and pause.
func (c *Controller) ToggleAudio() {
	c.withPlayer("toggle audio", (*media.Player).Toggle)
}

// ReplayAudio restarts the current question's cue from its own start.
func (c *Controller) ReplayAudio() {
	c.withPlayer("replay audio", (*media.Player).Replay)
}

// HandleMediaEvent forwards backend telemetry to the cue player.
func (c *Controller) HandleMediaEvent(ev media.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInProgress {
		return
	}
	c.player.HandleEvent(ev)
}

func (c *Controller) withPlayer(op string, fn func(*media.Player)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked(op) {
		return
	}
	fn(c.player)
}

// activeLocked reports whether mutations are accepted, logging the stale
// operation otherwise. c.mu must be held.
func (c *Controller) activeLocked(op string) bool {
	if c.phase == PhaseInProgress {
		return true
	}
	c.log.Debug().Str("op", op).Str("phase", c.phase.String()).Msg("stale operation ignored")
	return false
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	partIdx, qIdx := c.cursor.Index()
	return State{
		SessionID:     c.id,
		Phase:         c.phase,
		PartID:        c.cursor.CurrentPart().ID,
		PartIndex:     partIdx,
		QuestionID:    c.cursor.CurrentQuestion().ID,
		QuestionIndex: qIdx,
		Remaining:     c.remainingLocked(),
		Total:         c.def.TotalQuestions(),
		Answered:      c.answers.Len(),
		Flagged:       c.flags.Len(),
		IsFirst:       c.cursor.IsFirst(),
		IsLast:        c.cursor.IsLast(),
		Audio:         c.player.Status(),
	}
}

func (c *Controller) remainingLocked() int {
	if !c.clock.Started() {
		return c.def.TimeLimitSecs
	}
	return c.clock.Remaining()
}

// CurrentQuestion returns the question under the cursor.
func (c *Controller) CurrentQuestion() exam.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor.CurrentQuestion()
}

// AnswerFor returns the recorded option for questionID.
func (c *Controller) AnswerFor(questionID int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.AnswerFor(questionID)
}

// IsFlagged reports whether questionID is flagged for review.
func (c *Controller) IsFlagged(questionID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags.IsFlagged(questionID)
}

// Outcome returns the submitted outcome, or nil before submission.
func (c *Controller) Outcome() *Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

type nopBackend struct{}

func (nopBackend) Seek(float64) {}
func (nopBackend) Play()        {}
func (nopBackend) Pause()       {}

// Package media wraps the shared audio track of an exam and keeps playback
// aligned with the cue window of the active listening question.
package media

import (
	"time"

	"github.com/abhisek/examiz/internal/exam"
)

// EventKind names the asynchronous notifications a Backend produces.
type EventKind string

const (
	EventLoadedMetadata EventKind = "loadedmetadata"
	EventTimeUpdate     EventKind = "timeupdate"
	EventEnded          EventKind = "ended"
)

// Event is a playback notification from the backend.
type Event struct {
	Kind     EventKind
	Position float64 // seconds
	Duration float64 // seconds, set on loadedmetadata
}

// Backend is the media API the player drives. Implementations report
// progress back through Events delivered to Player.HandleEvent.
type Backend interface {
	Seek(position float64)
	Play()
	Pause()
}

// Config controls player behavior.
type Config struct {
	// TickInterval is how often the event loop polls the backend for
	// telemetry.
	TickInterval time.Duration

	// StopAtCueEnd pauses playback once the position reaches the active
	// question's AudioEnd.
	StopAtCueEnd bool
}

// DefaultConfig returns the recommended player settings.
func DefaultConfig() Config {
	return Config{
		TickInterval: 250 * time.Millisecond,
		StopAtCueEnd: true,
	}
}

// Status is a read-only view of the player for rendering.
type Status struct {
	Active     bool
	QuestionID int
	CueStart   float64
	CueEnd     float64
	Position   float64
	Duration   float64
	Playing    bool
}

// Player is the media cue player.
type Player struct {
	backend  Backend
	cfg      Config
	active   *exam.Question
	position float64
	duration float64
	playing  bool
}

// NewPlayer creates a player driving backend.
func NewPlayer(backend Backend, cfg Config) *Player {
	return &Player{backend: backend, cfg: cfg}
}

// CueTo makes q the active question. A listening question seeks the track
// to its AudioStart without starting playback. Any other question clears
// the active cue and pauses audio left playing from the previous one.
func (p *Player) CueTo(q exam.Question) {
	if p.playing {
		p.backend.Pause()
		p.playing = false
	}
	if !q.IsListening() {
		p.active = nil
		return
	}
	cue := q
	p.active = &cue
	p.seek(cue.AudioStart)
}

// Play starts playback of the active cue. No-op without a listening question.
func (p *Player) Play() {
	if p.active == nil || p.playing {
		return
	}
	// Resuming past the cue end restarts the cue instead of playing the
	// next question's window.
	if p.cfg.StopAtCueEnd && p.position >= p.active.AudioEnd {
		p.seek(p.active.AudioStart)
	}
	p.backend.Play()
	p.playing = true
}

// Pause stops playback, keeping the position.
func (p *Player) Pause() {
	if !p.playing {
		return
	}
	p.backend.Pause()
	p.playing = false
}

// Toggle switches between Play and Pause.
func (p *Player) Toggle() {
	if p.playing {
		p.Pause()
		return
	}
	p.Play()
}

// Replay seeks to the active question's own AudioStart and plays.
func (p *Player) Replay() {
	if p.active == nil {
		return
	}
	p.seek(p.active.AudioStart)
	p.backend.Play()
	p.playing = true
}

// HandleEvent applies a backend notification.
func (p *Player) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventLoadedMetadata:
		p.duration = ev.Duration
	case EventTimeUpdate:
		p.position = ev.Position
		if p.cfg.StopAtCueEnd && p.playing && p.active != nil && p.position >= p.active.AudioEnd {
			p.backend.Pause()
			p.playing = false
		}
	case EventEnded:
		p.position = ev.Position
		p.playing = false
	}
}

// Position returns the last known playback position in seconds.
func (p *Player) Position() float64 { return p.position }

// Duration returns the track duration once metadata has loaded, else 0.
func (p *Player) Duration() float64 { return p.duration }

// Playing reports whether audio is playing.
func (p *Player) Playing() bool { return p.playing }

// Status returns a snapshot for rendering.
func (p *Player) Status() Status {
	s := Status{
		Position: p.position,
		Duration: p.duration,
		Playing:  p.playing,
	}
	if p.active != nil {
		s.Active = true
		s.QuestionID = p.active.ID
		s.CueStart = p.active.AudioStart
		s.CueEnd = p.active.AudioEnd
	}
	return s
}

func (p *Player) seek(pos float64) {
	p.backend.Seek(pos)
	p.position = pos
}

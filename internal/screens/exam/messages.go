package exam

import (
	"time"

	"github.com/abhisek/examiz/internal/session"
)

// timerTickMsg is sent every second to drive the exam clock.
type timerTickMsg time.Time

// mediaTickMsg is sent at the media tick interval to advance the track.
type mediaTickMsg time.Time

// finishedMsg carries the outcome once the session is submitted, by the
// user or by the clock.
type finishedMsg struct {
	Outcome *session.Outcome
}

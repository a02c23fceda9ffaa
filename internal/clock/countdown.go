// Package clock provides the countdown that drives a session deadline.
//
// The countdown has no goroutines or timers of its own. The owner calls
// Tick once per fixed interval (nominally one second) from its event loop.
package clock

// Countdown tracks whole seconds remaining until a deadline.
type Countdown struct {
	remaining int
	started   bool
	expired   bool
}

// Start arms the countdown with durationSecs remaining. Restarting an
// already-started countdown is a no-op.
func (c *Countdown) Start(durationSecs int) {
	if c.started {
		return
	}
	if durationSecs < 0 {
		durationSecs = 0
	}
	c.remaining = durationSecs
	c.started = true
}

// Tick advances the countdown by one second. It returns true exactly once:
// on the tick that brings the countdown to zero. Ticks before Start or
// after expiry are no-ops.
func (c *Countdown) Tick() bool {
	if !c.started || c.expired {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.expired = true
		return true
	}
	return false
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.expired
}

// Started reports whether Start has been called.
func (c *Countdown) Started() bool {
	return c.started
}

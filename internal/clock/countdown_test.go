package clock

import "testing"

func TestCountdown_ExpiresExactlyOnce(t *testing.T) {
	var c Countdown
	c.Start(5)

	fired := 0
	for i := 0; i < 10; i++ {
		if c.Tick() {
			fired++
			if i != 4 {
				t.Errorf("expired on tick %d, want tick 4", i)
			}
		}
	}

	if fired != 1 {
		t.Errorf("expiry fired %d times, want 1", fired)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
	if !c.Expired() {
		t.Error("expected Expired to be true")
	}
}

func TestCountdown_DecrementsByOne(t *testing.T) {
	var c Countdown
	c.Start(3)
	c.Tick()
	if c.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", c.Remaining())
	}
	if c.Expired() {
		t.Error("expected not expired")
	}
}

func TestCountdown_TickBeforeStart(t *testing.T) {
	var c Countdown
	if c.Tick() {
		t.Error("tick before start must not expire")
	}
	if c.Started() {
		t.Error("expected not started")
	}
}

func TestCountdown_RestartIgnored(t *testing.T) {
	var c Countdown
	c.Start(10)
	c.Tick()
	c.Start(100)
	if c.Remaining() != 9 {
		t.Errorf("Remaining = %d, want 9", c.Remaining())
	}
}

func TestCountdown_ZeroDuration(t *testing.T) {
	var c Countdown
	c.Start(0)
	if !c.Tick() {
		t.Error("expected zero-length countdown to expire on first tick")
	}
	if c.Tick() {
		t.Error("expected second tick to be a no-op")
	}
}

package media

import "time"

// VirtualTrack is a Backend that simulates a recording of fixed length.
// It has no clock of its own: the event loop calls Advance on every media
// tick and forwards the returned events to the player.
type VirtualTrack struct {
	duration float64
	position float64
	playing  bool
	loaded   bool
	pending  []Event
}

var _ Backend = (*VirtualTrack)(nil)

// NewVirtualTrack creates a track durationSecs long.
func NewVirtualTrack(durationSecs float64) *VirtualTrack {
	return &VirtualTrack{duration: durationSecs}
}

// Seek moves the playhead, clamped to the track bounds.
func (t *VirtualTrack) Seek(position float64) {
	if position < 0 {
		position = 0
	}
	if position > t.duration {
		position = t.duration
	}
	t.position = position
	t.pending = append(t.pending, Event{Kind: EventTimeUpdate, Position: t.position})
}

// Play starts advancing the playhead. Playing a finished track rewinds it.
func (t *VirtualTrack) Play() {
	if t.position >= t.duration {
		t.position = 0
	}
	t.playing = true
}

// Pause stops advancing the playhead.
func (t *VirtualTrack) Pause() {
	t.playing = false
}

// Advance moves a playing track forward by dt and returns the events
// produced since the last call, in order. Metadata is reported on the
// first call.
func (t *VirtualTrack) Advance(dt time.Duration) []Event {
	events := t.pending
	t.pending = nil

	if !t.loaded {
		t.loaded = true
		events = append([]Event{{Kind: EventLoadedMetadata, Duration: t.duration}}, events...)
	}

	if !t.playing || dt <= 0 {
		return events
	}

	t.position += dt.Seconds()
	if t.position >= t.duration {
		t.position = t.duration
		t.playing = false
		return append(events,
			Event{Kind: EventTimeUpdate, Position: t.position},
			Event{Kind: EventEnded, Position: t.position},
		)
	}
	return append(events, Event{Kind: EventTimeUpdate, Position: t.position})
}

// Position returns the playhead in seconds.
func (t *VirtualTrack) Position() float64 { return t.position }

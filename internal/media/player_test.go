package media

import (
	"testing"
	"time"

	"github.com/abhisek/examiz/internal/exam"
)

// fakeBackend records every call made by the player.
type fakeBackend struct {
	seeks  []float64
	plays  int
	pauses int
}

func (f *fakeBackend) Seek(pos float64) { f.seeks = append(f.seeks, pos) }
func (f *fakeBackend) Play()            { f.plays++ }
func (f *fakeBackend) Pause()           { f.pauses++ }

func (f *fakeBackend) lastSeek() float64 {
	if len(f.seeks) == 0 {
		return -1
	}
	return f.seeks[len(f.seeks)-1]
}

var (
	listenA = exam.Question{ID: 1, Type: exam.TypeListening, AudioStart: 5, AudioEnd: 20}
	listenB = exam.Question{ID: 2, Type: exam.TypeListening, AudioStart: 20, AudioEnd: 40}
	reading = exam.Question{ID: 3, Type: exam.TypeReading}
)

func TestCueTo_ListeningSeeksToStart(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())

	p.CueTo(listenB)

	if b.lastSeek() != 20 {
		t.Errorf("seek = %v, want 20", b.lastSeek())
	}
	if p.Playing() {
		t.Error("cueing must not start playback")
	}
	if st := p.Status(); !st.Active || st.QuestionID != 2 {
		t.Errorf("status = %+v, want active question 2", st)
	}
}

func TestCueTo_ReadingIsNoopOnBackend(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())

	p.CueTo(reading)

	if len(b.seeks) != 0 {
		t.Errorf("seeks = %v, want none", b.seeks)
	}
	if p.Status().Active {
		t.Error("expected no active cue on a reading question")
	}
}

func TestPlay_NoActiveQuestionIsNoop(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())

	p.Play()
	p.CueTo(reading)
	p.Play()

	if b.plays != 0 {
		t.Errorf("plays = %d, want 0", b.plays)
	}
	if p.Playing() {
		t.Error("expected not playing")
	}
}

func TestReplay_AlwaysSeeksToOwnCueStart(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())

	p.CueTo(listenA)
	p.Play()
	p.HandleEvent(Event{Kind: EventTimeUpdate, Position: 13.5})
	p.Replay()

	if b.lastSeek() != 5 {
		t.Errorf("replay seek = %v, want 5", b.lastSeek())
	}
	if !p.Playing() {
		t.Error("expected replay to play")
	}

	// Different question, arbitrary prior position.
	p.CueTo(listenB)
	p.HandleEvent(Event{Kind: EventTimeUpdate, Position: 3})
	p.Replay()
	if b.lastSeek() != 20 {
		t.Errorf("replay seek = %v, want 20", b.lastSeek())
	}
	if p.Position() != 20 {
		t.Errorf("position = %v, want 20", p.Position())
	}
}

func TestReplay_WithoutCueIsNoop(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())
	p.CueTo(reading)
	p.Replay()
	if b.plays != 0 || len(b.seeks) != 0 {
		t.Errorf("backend touched: plays=%d seeks=%v", b.plays, b.seeks)
	}
}

func TestHandleEvent_EndedStopsPlaying(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())
	p.CueTo(listenA)
	p.Play()

	p.HandleEvent(Event{Kind: EventLoadedMetadata, Duration: 60})
	p.HandleEvent(Event{Kind: EventEnded, Position: 60})

	if p.Playing() {
		t.Error("expected ended to clear playing")
	}
	if p.Duration() != 60 {
		t.Errorf("duration = %v, want 60", p.Duration())
	}
}

func TestHandleEvent_StopsAtCueEnd(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())
	p.CueTo(listenA)
	p.Play()

	p.HandleEvent(Event{Kind: EventTimeUpdate, Position: 19.9})
	if !p.Playing() {
		t.Fatal("expected still playing inside the cue window")
	}
	p.HandleEvent(Event{Kind: EventTimeUpdate, Position: 20})
	if p.Playing() {
		t.Error("expected pause at cue end")
	}
	if b.pauses != 1 {
		t.Errorf("pauses = %d, want 1", b.pauses)
	}

	// Playing again restarts the cue rather than running into the next window.
	p.Play()
	if b.lastSeek() != 5 {
		t.Errorf("seek = %v, want 5", b.lastSeek())
	}
}

func TestHandleEvent_CueEndDisabled(t *testing.T) {
	b := &fakeBackend{}
	cfg := DefaultConfig()
	cfg.StopAtCueEnd = false
	p := NewPlayer(b, cfg)
	p.CueTo(listenA)
	p.Play()

	p.HandleEvent(Event{Kind: EventTimeUpdate, Position: 25})
	if !p.Playing() {
		t.Error("expected playback to continue past cue end")
	}
}

func TestCueTo_PausesPreviousPlayback(t *testing.T) {
	b := &fakeBackend{}
	p := NewPlayer(b, DefaultConfig())
	p.CueTo(listenA)
	p.Play()

	p.CueTo(reading)
	if p.Playing() {
		t.Error("expected playback paused when leaving a listening question")
	}
	if b.pauses != 1 {
		t.Errorf("pauses = %d, want 1", b.pauses)
	}
}

func TestVirtualTrack_Advance(t *testing.T) {
	tr := NewVirtualTrack(2)

	events := tr.Advance(0)
	if len(events) != 1 || events[0].Kind != EventLoadedMetadata || events[0].Duration != 2 {
		t.Fatalf("first advance = %+v, want loadedmetadata(2)", events)
	}

	// Paused track produces nothing.
	if events := tr.Advance(time.Second); len(events) != 0 {
		t.Errorf("paused advance = %+v, want none", events)
	}

	tr.Play()
	events = tr.Advance(time.Second)
	if len(events) != 1 || events[0].Kind != EventTimeUpdate || events[0].Position != 1 {
		t.Errorf("advance = %+v, want timeupdate(1)", events)
	}

	events = tr.Advance(1500 * time.Millisecond)
	if len(events) != 2 || events[1].Kind != EventEnded {
		t.Fatalf("advance = %+v, want timeupdate then ended", events)
	}
	if tr.Position() != 2 {
		t.Errorf("position = %v, want 2 (clamped)", tr.Position())
	}
}

func TestVirtualTrack_SeekEmitsTimeUpdate(t *testing.T) {
	tr := NewVirtualTrack(10)
	tr.Advance(0)

	tr.Seek(-3)
	tr.Seek(4)
	events := tr.Advance(0)
	if len(events) != 2 {
		t.Fatalf("events = %+v, want 2 timeupdates", events)
	}
	if events[0].Position != 0 || events[1].Position != 4 {
		t.Errorf("positions = %v, %v, want 0, 4", events[0].Position, events[1].Position)
	}
}

func TestPlayerWithVirtualTrack(t *testing.T) {
	tr := NewVirtualTrack(60)
	p := NewPlayer(tr, DefaultConfig())

	p.CueTo(listenA)
	p.Play()
	for i := 0; i < 20; i++ {
		for _, ev := range tr.Advance(time.Second) {
			p.HandleEvent(ev)
		}
	}

	if p.Playing() {
		t.Error("expected player to stop at the end of the cue window")
	}
	if p.Position() < listenA.AudioEnd {
		t.Errorf("position = %v, want >= %v", p.Position(), listenA.AudioEnd)
	}
}

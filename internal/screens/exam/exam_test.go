package exam

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/exam/examtest"
	"github.com/abhisek/examiz/internal/media"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screens/results"
	"github.com/abhisek/examiz/internal/session"
)

type captureSink struct {
	outcomes []*session.Outcome
}

func (c *captureSink) Deliver(_ context.Context, o *session.Outcome) error {
	c.outcomes = append(c.outcomes, o)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newStarted(t *testing.T, def *ex.Definition) (*ExamScreen, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	s := New(Deps{Definition: def, Sink: sink, Media: media.DefaultConfig()})
	if s.ctrl == nil {
		t.Fatalf("controller not built: %s", s.errMsg)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected tick commands after start")
	}
	if s.ctrl.Phase() != session.PhaseInProgress {
		t.Fatalf("phase = %v, want in_progress", s.ctrl.Phase())
	}
	return s, sink
}

func press(s *ExamScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

func TestExamScreen_Briefing(t *testing.T) {
	s := New(Deps{Definition: examtest.TwoParts()})
	if s.ctrl.Phase() != session.PhaseNotStarted {
		t.Fatalf("phase = %v", s.ctrl.Phase())
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Two Part Exam") || !strings.Contains(view, "Press Enter to begin") {
		t.Errorf("briefing missing content:\n%s", view)
	}
	if s.Status() != "" {
		t.Error("status should be empty before the clock runs")
	}
	if s.CapturesEscape() {
		t.Error("briefing should let Esc go back")
	}
}

func TestExamScreen_BriefingEscPops(t *testing.T) {
	s := New(Deps{Definition: examtest.TwoParts()})
	cmd := press(s, specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestExamScreen_InvalidDefinition(t *testing.T) {
	s := New(Deps{Definition: &ex.Definition{Title: "broken"}})
	if s.ctrl != nil || s.errMsg == "" {
		t.Fatal("expected an error screen")
	}
	if !strings.Contains(s.View(80, 24), "Error") {
		t.Error("error not rendered")
	}
	if cmd := press(s, keyPress('x')); cmd == nil {
		t.Error("any key should go back")
	}
}

func TestExamScreen_AnswerByDigitAndLetter(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())

	press(s, keyPress('1'))
	if a, ok := s.ctrl.AnswerFor(1); !ok || a != 0 {
		t.Errorf("Q1 answer = %d,%v, want 0", a, ok)
	}

	press(s, keyPress('c'))
	if a, _ := s.ctrl.AnswerFor(1); a != 2 {
		t.Errorf("Q1 answer = %d, want 2 after 'c'", a)
	}
	if !strings.Contains(s.View(100, 30), "● C)") {
		t.Error("chosen option not shown")
	}
}

func TestExamScreen_Navigation(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())

	press(s, keyPress('n'))
	if id := s.ctrl.CurrentQuestion().ID; id != 2 {
		t.Errorf("after n: Q%d, want Q2", id)
	}
	press(s, specialKey(tea.KeyRight))
	if id := s.ctrl.CurrentQuestion().ID; id != 3 {
		t.Errorf("after right: Q%d, want Q3", id)
	}
	press(s, keyPress('n')) // last question
	if id := s.ctrl.CurrentQuestion().ID; id != 3 {
		t.Errorf("next at end moved to Q%d", id)
	}
	press(s, keyPress('p'), specialKey(tea.KeyLeft))
	if id := s.ctrl.CurrentQuestion().ID; id != 1 {
		t.Errorf("after p,left: Q%d, want Q1", id)
	}
	if s.Title() != "Part A · Listening" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestExamScreen_TabMovesBetweenParts(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())

	press(s, specialKey(tea.KeyTab))
	if st := s.ctrl.State(); st.PartID != "B" || st.QuestionID != 3 {
		t.Errorf("after tab: part %s Q%d, want B Q3", st.PartID, st.QuestionID)
	}
	press(s, specialKey(tea.KeyTab)) // no part after B
	if st := s.ctrl.State(); st.PartID != "B" {
		t.Errorf("tab past the last part moved to %s", st.PartID)
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if st := s.ctrl.State(); st.PartID != "A" || st.QuestionID != 1 {
		t.Errorf("after shift+tab: part %s Q%d, want A Q1", st.PartID, st.QuestionID)
	}
}

func TestExamScreen_AnswerSurvivesNavigation(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())
	press(s, keyPress('2'), keyPress('n'), keyPress('p'))
	s.syncOptions()
	if s.options.Chosen != 1 {
		t.Errorf("option list chosen = %d, want 1", s.options.Chosen)
	}
}

func TestExamScreen_Flag(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())
	press(s, keyPress('f'))
	if !s.ctrl.IsFlagged(1) {
		t.Fatal("Q1 not flagged")
	}
	if !strings.Contains(s.View(100, 30), "⚑ flagged") {
		t.Error("flag not rendered")
	}
	press(s, keyPress('f'))
	if s.ctrl.IsFlagged(1) {
		t.Error("second f should clear the flag")
	}
}

func TestExamScreen_JumpToQuestion(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())

	press(s, keyPress('g'))
	if !s.jumping {
		t.Fatal("g should open the jump prompt")
	}
	press(s, keyPress('9'), specialKey(tea.KeyEnter))
	if !s.jumping {
		t.Error("invalid target should keep the prompt open")
	}
	if s.ctrl.CurrentQuestion().ID != 1 {
		t.Error("invalid jump moved the cursor")
	}

	press(s, specialKey(tea.KeyBackspace), keyPress('3'), specialKey(tea.KeyEnter))
	if s.jumping {
		t.Error("valid jump should close the prompt")
	}
	if id := s.ctrl.CurrentQuestion().ID; id != 3 {
		t.Errorf("jumped to Q%d, want Q3", id)
	}
}

func TestExamScreen_JumpEscCancels(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())
	press(s, keyPress('g'), specialKey(tea.KeyEscape))
	if s.jumping {
		t.Error("esc should close the jump prompt")
	}
	if s.confirming {
		t.Error("esc in the prompt should not open the submit dialog")
	}
}

func TestExamScreen_SubmitConfirmCancel(t *testing.T) {
	s, sink := newStarted(t, examtest.TwoParts())
	if !s.CapturesEscape() {
		t.Fatal("exam should capture Esc while in progress")
	}

	press(s, specialKey(tea.KeyEscape))
	if !s.confirming {
		t.Fatal("esc should open the submit dialog")
	}
	if !strings.Contains(s.View(100, 30), "Submit your exam?") {
		t.Error("dialog not rendered")
	}
	press(s, keyPress('n'))
	if s.confirming || s.ctrl.Phase() != session.PhaseInProgress {
		t.Error("n should keep the exam running")
	}
	if len(sink.outcomes) != 0 {
		t.Error("nothing should be delivered")
	}
}

func TestExamScreen_SubmitShowsResults(t *testing.T) {
	s, sink := newStarted(t, examtest.TwoParts())
	press(s, keyPress('1'), keyPress('n'), keyPress('2'))

	cmd := press(s, keyPress('s'), keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a finished command")
	}
	msg, ok := cmd().(finishedMsg)
	if !ok {
		t.Fatalf("expected finishedMsg, got %T", cmd())
	}
	if msg.Outcome.Trigger != session.TriggerUser {
		t.Errorf("trigger = %s, want user", msg.Outcome.Trigger)
	}
	if len(sink.outcomes) != 1 {
		t.Fatalf("delivered %d outcomes, want 1", len(sink.outcomes))
	}

	_, cmd = s.Update(msg)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := replace.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("expected results screen, got %T", replace.Screen)
	}

	// Keys after submission are ignored.
	press(s, keyPress('3'))
	if s.ctrl.Outcome().Answered != 2 {
		t.Error("answers changed after submission")
	}
}

func TestExamScreen_SubmitViaButtons(t *testing.T) {
	s, sink := newStarted(t, examtest.TwoParts())
	cmd := press(s, keyPress('s'), specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on the Submit button should submit")
	}
	if len(sink.outcomes) != 1 {
		t.Errorf("delivered %d outcomes, want 1", len(sink.outcomes))
	}
}

func TestExamScreen_ExpiryAutoSubmits(t *testing.T) {
	s, sink := newStarted(t, examtest.WithTimeLimit(2))

	_, cmd := s.Update(timerTickMsg(time.Now()))
	if s.ctrl.Phase() != session.PhaseInProgress {
		t.Fatal("expired after one tick")
	}
	if cmd == nil {
		t.Fatal("ticking should continue")
	}

	_, cmd = s.Update(timerTickMsg(time.Now()))
	msg, ok := cmd().(finishedMsg)
	if !ok {
		t.Fatalf("expected finishedMsg, got %T", cmd())
	}
	if msg.Outcome.Trigger != session.TriggerExpiry {
		t.Errorf("trigger = %s, want expiry", msg.Outcome.Trigger)
	}
	if msg.Outcome.Result.Overall.Unanswered != 3 {
		t.Errorf("unanswered = %d, want 3", msg.Outcome.Result.Overall.Unanswered)
	}
	if len(sink.outcomes) != 1 {
		t.Errorf("delivered %d outcomes, want 1", len(sink.outcomes))
	}

	// Ticks after expiry stop the loop.
	if _, cmd := s.Update(timerTickMsg(time.Now())); cmd != nil {
		t.Error("tick after submission should not reschedule")
	}
}

func TestExamScreen_MediaTickPlaysCue(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())

	press(s, keyPress(' '))
	if !s.ctrl.State().Audio.Playing {
		t.Fatal("space should start the cue")
	}

	// Q1's cue runs 5s..20s; 250ms ticks.
	for i := 0; i < 8; i++ {
		s.Update(mediaTickMsg(time.Now()))
	}
	a := s.ctrl.State().Audio
	if a.Position < 6.9 || a.Position > 7.1 {
		t.Errorf("position = %.2f, want ~7", a.Position)
	}
	if a.Duration != 60 {
		t.Errorf("duration = %.0f, want 60 from metadata", a.Duration)
	}

	for i := 0; i < 80; i++ {
		s.Update(mediaTickMsg(time.Now()))
	}
	a = s.ctrl.State().Audio
	if a.Playing {
		t.Error("playback should stop at the cue end")
	}

	press(s, keyPress('r'))
	a = s.ctrl.State().Audio
	if !a.Playing || a.Position != 5 {
		t.Errorf("replay: playing=%v position=%.1f, want true 5", a.Playing, a.Position)
	}
}

func TestExamScreen_StatusShowsClock(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())
	press(s, keyPress('1'))
	status := s.Status()
	if !strings.Contains(status, "05:00") || !strings.Contains(status, "1/3 answered") {
		t.Errorf("status = %q", status)
	}
}

func TestExamScreen_KeyHints(t *testing.T) {
	s, _ := newStarted(t, examtest.TwoParts())
	listening := len(s.KeyHints())
	press(s, specialKey(tea.KeyTab))
	reading := len(s.KeyHints())
	if listening != reading+2 {
		t.Errorf("listening hints %d, reading hints %d", listening, reading)
	}
}

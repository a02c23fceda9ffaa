package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/exam/examtest"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/session"
)

// scenarioOutcome answers Q1 correctly, Q2 wrongly and leaves Q3 blank.
func scenarioOutcome(t *testing.T) *session.Outcome {
	t.Helper()
	c, err := session.New(examtest.TwoParts(), session.Options{SessionID: "r-1"})
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	if err := c.SelectAnswer(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectAnswer(2, 1); err != nil {
		t.Fatal(err)
	}
	o, err := c.Submit()
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestResultsScreen_Title(t *testing.T) {
	s := New(scenarioOutcome(t), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want Results", s.Title())
	}
}

func TestResultsScreen_Display(t *testing.T) {
	s := New(scenarioOutcome(t), examtest.TwoParts())
	view := s.View(100, 40)
	for _, want := range []string{"Two Part Exam", "33%", "Below Pass", "NOT PASSED", "Listening", "Reading"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_NilOutcome(t *testing.T) {
	s := New(nil, nil)
	if !strings.Contains(s.View(80, 24), "No result") {
		t.Error("expected empty-state message")
	}
}

func TestResultsScreen_ReviewNeedsDefinition(t *testing.T) {
	s := New(scenarioOutcome(t), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.reviewing {
		t.Error("review opened without a definition")
	}
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints = %d, want 3 without review", len(s.KeyHints()))
	}
}

func TestResultsScreen_ReviewShowsKey(t *testing.T) {
	s := New(scenarioOutcome(t), examtest.TwoParts())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // Q2, answered B, key C
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.reviewing {
		t.Fatal("expected review pane")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Question 2") || !strings.Contains(view, "charlie") {
		t.Errorf("unexpected review:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.reviewing {
		t.Error("enter should close the review")
	}
}

func TestResultsScreen_SelectionClamps(t *testing.T) {
	s := New(scenarioOutcome(t), nil)
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestResultsScreen_HomeKey(t *testing.T) {
	s := New(scenarioOutcome(t), nil)
	_, cmd := s.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

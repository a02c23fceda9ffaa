package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// OptionLabel returns the letter shown for option i: A, B, C...
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// OptionList renders the options of one question. It never reveals the key
// while Correct is negative.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when unanswered
	Correct int // -1 hides the answer key
}

// NewOptionList creates a list for answering. chosen is the recorded answer
// or -1.
func NewOptionList(options []string, chosen int) OptionList {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return OptionList{
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
		Correct: -1,
	}
}

// NewReviewList creates a read-only list that marks the correct option.
func NewReviewList(options []string, chosen, correct int) OptionList {
	l := NewOptionList(options, chosen)
	l.Correct = correct
	return l
}

// Update moves the cursor. It returns the picked option index, or -1 when
// the key did not pick one. Enter picks the cursor row; digits 1-9 and the
// option letters pick directly.
func (l OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || l.Correct >= 0 {
		return l, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return l, -1
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
		return l, -1
	case "enter":
		return l.pick(l.Cursor)
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= '1' && c <= '9':
			return l.pick(int(c - '1'))
		case c >= 'a' && c <= 'z':
			return l.pick(int(c - 'a'))
		}
	}
	return l, -1
}

func (l OptionList) pick(i int) (OptionList, int) {
	if i < 0 || i >= len(l.Options) {
		return l, -1
	}
	l.Cursor = i
	l.Chosen = i
	return l, i
}

// View renders one line per option.
func (l OptionList) View() string {
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Cursor && l.Correct < 0 {
			prefix = "▸ "
		}
		mark := "○"
		if i == l.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case l.Correct >= 0 && i == l.Correct:
			style = theme.Correct
		case l.Correct >= 0 && i == l.Chosen:
			style = theme.Incorrect
		case l.Correct >= 0:
			style = theme.Skipped
		case i == l.Chosen:
			style = theme.Chosen
		case i == l.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

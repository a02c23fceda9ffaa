package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal group of buttons with one focused at a time.
// Left/right (or tab) move focus and enter presses the focused button.
type ButtonRow struct {
	Buttons []Button
	Focus   int
}

// NewButtonRow creates a row focused on the first button.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setFocus(0)
	return r
}

func (r *ButtonRow) setFocus(i int) {
	if len(r.Buttons) == 0 {
		return
	}
	r.Focus = (i + len(r.Buttons)) % len(r.Buttons)
	for j := range r.Buttons {
		r.Buttons[j].Active = j == r.Focus
	}
}

// Update handles focus movement and presses.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setFocus(r.Focus - 1)
		return r, nil
	case "right", "l", "tab":
		r.setFocus(r.Focus + 1)
		return r, nil
	}
	var cmd tea.Cmd
	r.Buttons[r.Focus], cmd = r.Buttons[r.Focus].Update(msg)
	return r, cmd
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	views := make([]string, 0, len(r.Buttons)*2)
	for i, b := range r.Buttons {
		if i > 0 {
			views = append(views, "   ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}

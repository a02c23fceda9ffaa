package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// PlaceholderScreen explains why a feature is unavailable in this run.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ " + p.title + " ╌╌\n\n" + p.message)

	return content
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}

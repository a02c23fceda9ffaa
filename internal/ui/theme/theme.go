package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Calm exam-hall tones with loud colors reserved for the clock.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	BannerYellow = lipgloss.Color("#FACC15")
	BannerCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Passage = lipgloss.NewStyle().
		Foreground(Text).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Secondary).
		PaddingLeft(2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Flagged = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Skipped = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// ClockStyle picks the timer style for the remaining seconds: calm above
// five minutes, amber above one, red in the last minute.
func ClockStyle(remaining int) lipgloss.Style {
	switch {
	case remaining > 300:
		return lipgloss.NewStyle().Foreground(Text).Bold(true)
	case remaining > 60:
		return lipgloss.NewStyle().Foreground(Accent).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	}
}

package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // No results yet
	MascotCelebrating                      // Last result passed
	MascotAlert                            // Last result did not pass
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ABC │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A+  │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ~  │
│ ABC │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.BannerYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

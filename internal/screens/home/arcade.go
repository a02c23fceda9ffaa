package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

const titleFull = ` ███████╗██╗  ██╗ █████╗ ███╗   ███╗██╗███████╗
 ██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║██║╚══███╔╝
 █████╗   ╚███╔╝ ███████║██╔████╔██║██║  ███╔╝
 ██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║██║ ███╔╝
 ███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║██║███████╗
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚══════╝`

const titleCompact = "E · X · A · M · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.BannerYellow).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// examInfo is the part of the exam definition the home screen shows.
type examInfo struct {
	Title     string
	Questions int
	LimitSecs int
}

// renderStatsBar shows the loaded exam and the most recent result.
func renderStatsBar(info *examInfo, last *store.ResultRecord, taken int, cw int, compact bool) string {
	examStyle := lipgloss.NewStyle().Foreground(theme.BannerYellow).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.BannerCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var examText string
	switch {
	case info == nil:
		examText = dimStyle.Render("NO EXAM LOADED")
	case compact:
		examText = examStyle.Render(fmt.Sprintf("%dQ %s", info.Questions, layout.FormatClock(info.LimitSecs)))
	default:
		examText = examStyle.Render(fmt.Sprintf("%d QUESTIONS · %s", info.Questions, layout.FormatClock(info.LimitSecs)))
	}

	var lastText string
	switch {
	case last == nil:
		lastText = dimStyle.Render("NO RESULTS YET")
	case compact:
		lastText = lastStyle.Render(fmt.Sprintf("LAST %d%%", last.Percentage))
	default:
		lastText = lastStyle.Render(fmt.Sprintf("LAST %d%% %s · %d TAKEN", last.Percentage, strings.ToUpper(last.Band), taken))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.BannerCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(examText + "  " + lastText)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int, compact bool) string {
	disabled := m.DisabledSet()
	var rows []string
	for i, label := range m.Labels() {
		if compact {
			rows = append(rows, renderCompactItem(label, i == m.Selected, disabled[i]))
			continue
		}
		rows = append(rows, components.ArcadeButton(label, i == m.Selected, disabled[i], buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

// renderCompactItem renders a menu item as a plain line for terminals where
// bordered buttons would overflow.
func renderCompactItem(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.BannerYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
	}
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

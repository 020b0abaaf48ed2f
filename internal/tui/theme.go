package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must remain readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor pairs and "faint"
// styling is only applied on dark backgrounds (faint text on light
// terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62") // blue
	colorDone       lipgloss.TerminalColor = ac("28", "71") // green
	colorOverdue    lipgloss.TerminalColor = ac("124", "167")
	colorDragging   lipgloss.TerminalColor = ac("130", "215")

	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleCategory = lipgloss.NewStyle().Bold(true).Foreground(colorMuted).MarginTop(1)
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	styleDone     = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	styleMuted    = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
	styleOverdue  = lipgloss.NewStyle().Foreground(colorOverdue)
	styleDragged  = lipgloss.NewStyle().Foreground(colorDragging).Bold(true)
)

func priorityGlyph(p string) string {
	switch p {
	case "high":
		return "!!!"
	case "medium":
		return "!!"
	case "low":
		return "!"
	default:
		return ""
	}
}

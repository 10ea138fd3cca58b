package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The editor must stay readable on both light and dark terminals, so colors
// are adaptive and "faint" styling is reserved for dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// ApplyTheme forces the background assumption when the config overrides
// auto-detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetColorProfile(termenv.ColorProfile())
	}
}

var (
	colorMuted  = ac("240", "243")
	colorAccent = ac("26", "39")
	colorDanger = ac("124", "203")

	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleMuted     = lipgloss.NewStyle().Foreground(colorMuted)
	styleTabActive = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	styleTab       = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorDanger)

	styleItemMedia     = lipgloss.NewStyle().Background(ac("153", "24")).Foreground(ac("17", "231"))
	styleItemComponent = lipgloss.NewStyle().Background(ac("115", "29")).Foreground(ac("17", "231"))
	styleItemGroup     = lipgloss.NewStyle().Background(ac("182", "96")).Foreground(ac("17", "231"))
	styleItemSelected  = lipgloss.NewStyle().Background(ac("220", "214")).Foreground(ac("16", "16")).Bold(true)
	styleItemDragged   = lipgloss.NewStyle().Background(ac("250", "241")).Foreground(ac("16", "231")).Italic(true)
	styleItemMarked    = lipgloss.NewStyle().Background(ac("111", "63")).Foreground(ac("231", "231"))

	stylePlayhead  = lipgloss.NewStyle().Foreground(ac("160", "203")).Bold(true)
	styleLaneLabel = lipgloss.NewStyle().Foreground(colorMuted).Width(laneLabelWidth).MaxWidth(laneLabelWidth)
)

package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Property lookups are forgiving about JSON round-trips: numbers arrive as
// float64 after a load, but tests and defaults may hand in ints.
func propString(props map[string]any, key, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}

func propFloat(props map[string]any, key string, fallback float64) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

// renderCaption reveals its text left to right at a fixed character rate,
// so the relative time alone decides how much is visible.
func renderCaption(props map[string]any, rel float64, playing bool, width int) string {
	text := propString(props, "text", "")
	color := propString(props, "color", "7")
	rate := propFloat(props, "charsPerSecond", 20)

	// Reveal counts runes, not bytes, so multibyte captions never split a
	// character mid-sequence.
	runes := []rune(text)
	visible := int(rel * rate)
	if visible > len(runes) {
		visible = len(runes)
	}
	shown := ansi.Truncate(string(runes[:visible]), width, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(shown)
}

// renderColorCard is a flat colored panel with an optional label.
func renderColorCard(props map[string]any, rel float64, playing bool, width int) string {
	color := propString(props, "color", "4")
	label := propString(props, "label", "")
	h := int(propFloat(props, "height", 3))
	if h < 1 {
		h = 1
	}
	st := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Width(width).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center)
	return st.Render(label)
}

// renderCountdown counts whole seconds down from the configured start.
func renderCountdown(props map[string]any, rel float64, playing bool, width int) string {
	from := propFloat(props, "from", 10)
	left := int(math.Ceil(from - rel))
	if left < 0 {
		left = 0
	}
	return lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", left))
}

// renderChat replays a scripted conversation: each message appears once the
// relative time passes its "at" offset. This is the stand-in for the
// SMS-simulator style components.
func renderChat(props map[string]any, rel float64, playing bool, width int) string {
	msgs, _ := props["messages"].([]any)
	var lines []string
	for _, raw := range msgs {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if propFloat(m, "at", 0) > rel {
			continue
		}
		from := propString(m, "from", "?")
		text := propString(m, "text", "")
		line := fmt.Sprintf("%s: %s", from, text)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

// ContentWidth returns the inner width used for page sections, capped so
// long lines stay readable on wide terminals.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card renders a titled, rounded-border section at the given width.
func Card(title, body string, width int) string {
	content := body
	if title != "" {
		content = theme.Heading.Render(title) + "\n" + body
	}
	return theme.Card.
		Width(width).
		Render(content)
}

// StatCard renders a small card with a big value and a caption.
func StatCard(label, value, caption string, width int) string {
	return theme.Card.
		Width(width).
		Align(lipgloss.Center).
		Render(
			theme.Subtitle.Render(label) + "\n" +
				theme.Title.Render(value) + "\n" +
				theme.Hint.Render(caption),
		)
}

// Bullets renders one "• item" line per entry.
func Bullets(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += "\n"
		}
		out += "• " + it
	}
	return out
}

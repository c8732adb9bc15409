package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

// ContentWidth returns the inner width used for every section of a
// screen so boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded border at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Toast renders a short-lived XP notice.
func Toast(points int) string {
	return theme.XP.Render(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1).
		Render(fmt.Sprintf("+%d XP", points)))
}

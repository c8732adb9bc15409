package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

const (
	meterFull  = "▰"
	meterEmpty = "▱"
)

// Meter renders a segmented bar for a 0..100 percentage followed by the
// number, fitted to width cells.
func Meter(percent, width int) string {
	percent = max(0, min(percent, 100))
	label := fmt.Sprintf(" %3d%%", percent)

	cells := max(width-lipgloss.Width(label), 4)
	filled := cells * percent / 100

	return theme.ProgressFilled.Render(strings.Repeat(meterFull, filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(meterEmpty, cells-filled)) +
		theme.Hint.Render(label)
}

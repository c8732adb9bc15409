package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	HeaderHeight = 3
	FooterHeight = 3

	// Below this width question grids collapse to a single column.
	CompactWidthThreshold = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the visitor's progress shown on the right of the header.
// Zero fields render nothing.
type Status struct {
	Mission  int
	Missions int
	XP       int
	Level    int
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the visitor to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("SIGNAL TOO WEAK"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render("Terminal too small"),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("need %d x %d, have %d x %d", MinWidth, MinHeight, width, height)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s Status) render() string {
	var parts []string
	if s.Missions > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("MISSION %d/%d", s.Mission, s.Missions)))
	}
	if s.Level > 0 {
		parts = append(parts,
			theme.XP.Render(fmt.Sprintf("⚡ %d XP", s.XP)),
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("LV %d", s.Level)),
		)
	}
	return strings.Join(parts, "   ")
}

// bar draws the bordered strip used by both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the brand on the left, title centered and status
// on the right.
func RenderHeader(title string, status Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ▣ BLACK BOX")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := status.render()

	inner := max(width-4, 0) // border and padding
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter renders key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := desc.Render("  ·  ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, sep), width)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return header + "\n" + body + "\n" + footer
}

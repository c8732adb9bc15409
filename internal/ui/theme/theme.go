package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: red on black, green reserved for the pass option
var (
	Primary = lipgloss.Color("#EF4444") // Red
	Accent  = lipgloss.Color("#FACC15") // Gold, used for XP
	Success = lipgloss.Color("#22C55E") // Green
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#A1A1AA") // Zinc
	BgCard  = lipgloss.Color("#18181B") // Near Black
	Border  = lipgloss.Color("#7F1D1D") // Dark Red
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

	XP = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Overlay = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Padding(1, 3).
		Align(lipgloss.Center)
)

// Option states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Faint(true)

	Pass = lipgloss.NewStyle().
		Foreground(Text).
		Background(Success).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

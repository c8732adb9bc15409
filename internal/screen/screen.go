package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/funnel/internal/ui/layout"
)

// Screen is one full-frame view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that report the
// visitor's mission, XP and level in the header.
type StatusProvider interface {
	Status() layout.Status
}

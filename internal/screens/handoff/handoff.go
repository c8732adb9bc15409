// Package handoff is the last screen of a session: the visitor has been
// sent to checkout and the app only waits to close.
package handoff

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	eng "github.com/abhisek/funnel/internal/funnel"
	"github.com/abhisek/funnel/internal/screen"
	"github.com/abhisek/funnel/internal/ui/components"
	"github.com/abhisek/funnel/internal/ui/layout"
	"github.com/abhisek/funnel/internal/ui/theme"
)

// HandoffScreen shows the checkout URL after the redirect.
type HandoffScreen struct {
	url     string
	profile eng.Profile
	openErr error
}

var _ screen.Screen = (*HandoffScreen)(nil)
var _ screen.KeyHintProvider = (*HandoffScreen)(nil)

// New creates the handoff screen. openErr is the browser failure, if any;
// the URL is always printed so it can be followed by hand.
func New(url string, st eng.State, openErr error) screen.Screen {
	return &HandoffScreen{url: url, profile: st.Profile, openErr: openErr}
}

func (h *HandoffScreen) Init() tea.Cmd {
	return nil
}

func (h *HandoffScreen) Title() string {
	return "CHECKOUT"
}

func (h *HandoffScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Exit"},
	}
}

func (h *HandoffScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "space", "q":
			return h, tea.Quit
		}
	}
	return h, nil
}

func (h *HandoffScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	status := "Your checkout page is open in the browser."
	if h.openErr != nil {
		status = "Could not open a browser. Continue at:"
	}

	sections := []string{
		theme.Title.Render("ACCESS RESERVED"),
		"",
		theme.Body.Render(status),
		lipgloss.NewStyle().Foreground(theme.Accent).Underline(true).Render(h.url),
		"",
		theme.XP.Render(fmt.Sprintf("%d XP · LEVEL %d", h.profile.XP, h.profile.Level)),
	}
	if h.profile.PsychProfile != "" {
		sections = append(sections, theme.Hint.Render(h.profile.PsychProfile))
	}

	card := components.Card(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
	return components.Center(card, width, height)
}

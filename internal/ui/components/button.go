package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

// Button is the single call to action of a screen.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton returns a button that runs onPress when pressed while active.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

// Update presses the button on enter or space. Inactive buttons swallow
// every key.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	if k := kmsg.String(); k == "enter" || k == "space" {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the label between arrows when active, dimmed otherwise.
func (b Button) View() string {
	if !b.Active {
		return theme.ButtonInactive.Render(b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label + " ◂")
}

package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

// MenuItem is one action in a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu stacks the actions of a screen that offers more than one way out,
// such as buy or decline on the offer.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the selection with up/down (wrapping at the ends) and
// runs the selected action on enter or space.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch kmsg.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "enter", "space":
		if action := m.Items[m.Selected].Action; action != nil {
			return m, action()
		}
	}
	return m, nil
}

// View renders one full-width row per item; the selected one is a
// bordered, filled button.
func (m Menu) View(width int) string {
	rows := make([]string, len(m.Items))
	for i, item := range m.Items {
		if i != m.Selected {
			rows[i] = theme.ButtonInactive.Width(width).Align(lipgloss.Center).Render(item.Label)
			continue
		}
		rows[i] = theme.ButtonActive.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Width(width).
			Align(lipgloss.Center).
			Render("▸ " + item.Label)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

// Letters label options in order.
const Letters = "ABCDE"

// OptionList renders a question's options. Once Chosen is set every
// option is disabled; the list never changes a choice.
type OptionList struct {
	Options []string
	Grid    bool // two columns
	Cursor  int
	Chosen  int // -1 until a choice is made
	Pass    int // option highlighted green when chosen, -1 for none
}

// NewOptionList creates a list with the cursor on the first option.
func NewOptionList(options []string, grid bool, pass int) OptionList {
	return OptionList{
		Options: options,
		Grid:    grid,
		Chosen:  -1,
		Pass:    pass,
	}
}

// Locked reports whether a choice has been made.
func (o OptionList) Locked() bool {
	return o.Chosen >= 0
}

// Update moves the cursor. Choosing is left to the caller, which owns
// the funnel state.
func (o OptionList) Update(msg tea.Msg) OptionList {
	if o.Locked() || len(o.Options) == 0 {
		return o
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o
	}

	step := 1
	if o.Grid {
		step = 2
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Cursor-step >= 0 {
			o.Cursor -= step
		}
	case "down", "j":
		if o.Cursor+step < len(o.Options) {
			o.Cursor += step
		}
	case "left", "h":
		if o.Grid && o.Cursor%2 == 1 {
			o.Cursor--
		}
	case "right", "l":
		if o.Grid && o.Cursor%2 == 0 && o.Cursor+1 < len(o.Options) {
			o.Cursor++
		}
	}
	return o
}

// KeyIndex maps "1".."5" and "a".."e" to an option index.
func (o OptionList) KeyIndex(key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(o.Options) {
		return n - 1, true
	}
	if len(key) == 1 {
		if i := strings.IndexByte(strings.ToLower(Letters), key[0]); i >= 0 && i < len(o.Options) {
			return i, true
		}
	}
	return 0, false
}

// View renders the options at content width cw.
func (o OptionList) View(cw int) string {
	if !o.Grid {
		rows := make([]string, len(o.Options))
		for i := range o.Options {
			rows[i] = o.option(i, cw)
		}
		return strings.Join(rows, "\n")
	}

	colWidth := (cw - 2) / 2
	var rows []string
	for i := 0; i < len(o.Options); i += 2 {
		left := o.option(i, colWidth)
		right := ""
		if i+1 < len(o.Options) {
			right = o.option(i+1, colWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	}
	return strings.Join(rows, "\n")
}

func (o OptionList) option(i, width int) string {
	line := string(Letters[i]) + ")  " + o.Options[i]
	style, border := theme.Unselected, theme.Border

	switch {
	case o.Locked() && i == o.Chosen && i == o.Pass:
		style, border = theme.Pass, theme.Success
	case o.Locked() && i == o.Chosen:
		style, border = theme.Selected, theme.Primary
	case o.Locked():
		style = theme.Disabled
	case i == o.Cursor:
		style, border = theme.Cursor, theme.Primary
		line = "▸ " + line
	}

	return style.
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(line)
}

package funnel

import (
	"time"

	tea "charm.land/bubbletea/v2"

	eng "github.com/abhisek/funnel/internal/funnel"
)

// timerMsg fires when the session's earliest timer is due. gen guards
// against ticks that a later schedule superseded.
type timerMsg struct {
	gen int
}

// eventMsg carries an engine event from a button or menu action.
type eventMsg struct {
	ev eng.Event
}

// toastDoneMsg hides the XP toast it was scheduled for.
type toastDoneMsg struct {
	gen int
}

// openedMsg reports the outcome of the checkout redirect.
type openedMsg struct {
	url string
	err error
}

const toastDuration = time.Second

// emit returns a command that feeds ev back into the screen.
func emit(ev eng.Event) tea.Cmd {
	return func() tea.Msg { return eventMsg{ev: ev} }
}

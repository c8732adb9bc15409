// Package router swaps the screen that owns the terminal. The funnel
// only moves forward, so there is no back stack.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/funnel/internal/screen"
)

// ReplaceScreenMsg asks the router to hand the terminal to Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router holds the active screen.
type Router struct {
	active screen.Screen
}

// New creates a Router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace makes s the active screen and returns its Init command. A nil
// screen is ignored.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	r.active = s
	return s.Init()
}

// Active returns the screen receiving messages.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update performs replacements and forwards every other message to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

// Package intro is the boot sequence shown before the funnel's landing
// step.
package intro

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/router"
	"github.com/abhisek/funnel/internal/screen"
	"github.com/abhisek/funnel/internal/ui/components"
	"github.com/abhisek/funnel/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	lineInterval = 400 * time.Millisecond
	bannerAt     = 2000 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

var bootLines = []string{
	"> establishing encrypted channel",
	"> loading operator dossier",
	"> bypassing weak player filter",
	"> access node located",
	"> black box online",
}

var cursorFrames = []string{"█", " "}

type tickMsg time.Time

// IntroScreen types out the boot lines, then the banner, and hands over
// to the funnel on a key press.
type IntroScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*IntroScreen)(nil)

// New creates an IntroScreen that replaces itself with the screen built
// by next.
func New(next func() screen.Screen) *IntroScreen {
	return &IntroScreen{next: next}
}

func (s *IntroScreen) Title() string {
	return ""
}

func (s *IntroScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		return s, tick()

	case tea.KeyPressMsg:
		// The first key skips the animation, the next one continues.
		if s.elapsed < totalDur {
			s.elapsed = totalDur
			return s, nil
		}
		return s, s.transition()
	}

	return s, nil
}

// Done reports whether the boot sequence has finished.
func (s *IntroScreen) Done() bool {
	return s.elapsed >= totalDur
}

func (s *IntroScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *IntroScreen) View(width, height int) string {
	lineStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	cursor := lipgloss.NewStyle().Foreground(theme.Primary).
		Render(cursorFrames[s.tickCount%len(cursorFrames)])

	shown := min(int(s.elapsed/lineInterval), len(bootLines))
	lines := make([]string, 0, len(bootLines)+1)
	for _, l := range bootLines[:shown] {
		lines = append(lines, lineStyle.Render(l))
	}
	if shown < len(bootLines) {
		lines = append(lines, cursor)
	}

	sections := []string{strings.Join(lines, "\n")}

	if s.elapsed >= bannerAt {
		sections = append(sections, "", components.Banner(components.ContentWidth(width)))
	}

	if s.Done() {
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to enter")
		sections = append(sections, "", hint)
	}

	return components.Center(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}

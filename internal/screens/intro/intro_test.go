package intro

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/funnel/internal/router"
	"github.com/abhisek/funnel/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "landing" }
func (s *stubScreen) Title() string                           { return "Landing" }

func newTestIntro() (*IntroScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(s *IntroScreen, n int) {
	for i := 0; i < n; i++ {
		s.Update(tickMsg(time.Now()))
	}
}

func TestBootLinesAppearOverTime(t *testing.T) {
	s, _ := newTestIntro()

	view := s.View(100, 30)
	if strings.Contains(view, bootLines[0]) {
		t.Error("no boot line should show before the first interval")
	}

	sendTicks(s, 4)
	view = s.View(100, 30)
	if !strings.Contains(view, bootLines[0]) || strings.Contains(view, bootLines[1]) {
		t.Error("expected exactly the first boot line after 400ms")
	}

	sendTicks(s, 16)
	if !strings.Contains(s.View(100, 30), "██████") {
		t.Error("expected banner after 2s")
	}
}

func TestElapsedCapped(t *testing.T) {
	s, calls := newTestIntro()
	sendTicks(s, 60)
	if s.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, s.elapsed)
	}
	if *calls != 0 {
		t.Error("intro must not hand over without a key press")
	}
	if !strings.Contains(s.View(100, 30), "press any key") {
		t.Error("expected key hint once done")
	}
}

func TestFirstKeySkipsAnimation(t *testing.T) {
	s, calls := newTestIntro()
	sendTicks(s, 3)

	_, cmd := s.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("skipping should not transition")
	}
	if !s.Done() {
		t.Fatal("expected animation skipped")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("next should be built once, got %d", *calls)
	}
}

func TestTransitionOnce(t *testing.T) {
	s, calls := newTestIntro()
	sendTicks(s, 30)
	s.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second key press should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("next should be built exactly once, got %d", *calls)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	s, _ := newTestIntro()
	sendTicks(s, 30)
	s.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := s.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("expected ticking to stop once replaced")
	}
}

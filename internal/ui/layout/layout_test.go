package layout

import (
	"strings"
	"testing"
)

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d, want 24", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(59, 40) || !IsTooSmall(100, 19) {
		t.Error("expected sizes below the minimum to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeaderStatus(t *testing.T) {
	header := RenderHeader("MISSION", Status{Mission: 3, Missions: 9, XP: 125, Level: 2}, 120)
	for _, want := range []string{"BLACK BOX", "MISSION 3/9", "125 XP", "LV 2"} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q", want)
		}
	}

	bare := RenderHeader("", Status{}, 120)
	if strings.Contains(bare, "XP") || strings.Contains(bare, "MISSION") {
		t.Error("zero status should render no progress")
	}
}

func TestRenderFooter(t *testing.T) {
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Continue"}}, 80)
	if !strings.Contains(footer, "Enter") || !strings.Contains(footer, "Continue") {
		t.Errorf("footer missing hint: %q", footer)
	}
}

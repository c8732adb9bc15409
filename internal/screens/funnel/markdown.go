package funnel

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders screen copy, rebuilding the renderer only when the
// wrap width changes.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{}
}

// Render returns md rendered for width columns. On a renderer error the
// source text is returned unchanged.
func (m *markdown) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if m.renderer == nil || width != m.width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		m.renderer, m.width = r, width
		m.cache = make(map[string]string)
	}

	if out, ok := m.cache[md]; ok {
		return out
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	m.cache[md] = out
	return out
}

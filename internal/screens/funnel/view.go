package funnel

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/content"
	eng "github.com/abhisek/funnel/internal/funnel"
	"github.com/abhisek/funnel/internal/ui/components"
	"github.com/abhisek/funnel/internal/ui/layout"
	"github.com/abhisek/funnel/internal/ui/theme"
)

func (s *FunnelScreen) View(width, height int) string {
	st := s.session.State()
	cw := components.ContentWidth(width)

	var body string
	if st.BonusVisible {
		body = s.viewBonus(cw)
	} else {
		body = s.viewStep(st, cw, width)
	}

	if s.toast > 0 {
		body = components.Toast(s.toast) + "\n\n" + body
	}
	return components.Center(body, width, height)
}

func (s *FunnelScreen) viewStep(st eng.State, cw, width int) string {
	scr := s.session.Screen()
	cp := s.session.Catalog().Copy(st.Step)

	var sections []string
	if scr.Kind == eng.KindLanding {
		sections = append(sections, components.Banner(cw))
	}
	if cp.Title != "" {
		sections = append(sections, theme.Title.Width(cw).Render(cp.Title))
	}
	if cp.Subtitle != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render(cp.Subtitle))
	}

	switch scr.Kind {
	case eng.KindQuestion, eng.KindGate:
		sections = append(sections, s.viewQuestion(st, scr, cw, width))
	case eng.KindAnalysis:
		sections = append(sections, s.viewBody(cp, cw), s.viewAnalysis(st, cw))
	case eng.KindCompletion:
		sections = append(sections, s.viewBody(cp, cw), viewProfile(st.Profile), s.button.View())
	case eng.KindOffer, eng.KindRejection:
		sections = append(sections, s.viewBody(cp, cw), s.menu.View(cw))
	default:
		sections = append(sections, s.viewBody(cp, cw))
		if cp.Media != "" {
			sections = append(sections, theme.Hint.Render("▶ "+cp.Media))
		}
		sections = append(sections, s.button.View())
	}

	return lipgloss.JoinVertical(lipgloss.Center, nonEmpty(sections)...)
}

func (s *FunnelScreen) viewBody(cp content.Copy, cw int) string {
	return s.markdown.Render(cp.Body, cw)
}

func (s *FunnelScreen) viewQuestion(st eng.State, scr eng.Screen, cw, width int) string {
	q, ok := s.session.Catalog().Question(scr.QuestionIndex)
	if !ok {
		return ""
	}

	opts := s.options
	// Two columns do not fit a narrow terminal.
	if layout.IsCompactWidth(width) {
		opts.Grid = false
	}

	sections := []string{
		theme.Hint.Render(fmt.Sprintf("MISSION %d/%d", st.Mission(), eng.MissionCount)),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Align(lipgloss.Center).Render(q.Text),
		"",
		opts.View(cw),
	}
	if st.HasSelection() {
		if r := q.Response(st.Selected); r != "" {
			sections = append(sections, "", theme.Hint.Render(r))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (s *FunnelScreen) viewAnalysis(st eng.State, cw int) string {
	if !st.AnalysisRunning && st.AnalysisProgress == 0 {
		return s.button.View()
	}

	bar := components.Meter(st.AnalysisProgress, cw)
	status := s.spinner.View() + " " + theme.Hint.Render("analyzing...")
	if st.AnalysisProgress >= 100 {
		status = theme.Pass.Padding(0, 1).Render("PROFILE: " + st.Profile.PsychProfile)
	}
	return lipgloss.JoinVertical(lipgloss.Center, bar, "", status)
}

func viewProfile(p eng.Profile) string {
	lines := []string{
		theme.XP.Render(fmt.Sprintf("LEVEL %d", p.Level)),
	}
	if p.PsychProfile != "" {
		lines = append(lines, theme.Body.Render("Profile: ")+theme.Cursor.Render(p.PsychProfile))
	}
	if p.IsElite {
		lines = append(lines, theme.Hint.Render("elite operator"))
	}
	return strings.Join(lines, "\n")
}

func (s *FunnelScreen) viewBonus(cw int) string {
	bonus := s.session.Catalog().Bonus
	inner := []string{
		theme.Title.Render(orDefault(bonus.Title, "BONUS")),
		s.markdown.Render(bonus.Body, cw-8),
		theme.ButtonActive.Render("[Y] " + orDefault(bonus.Action, "CLAIM")),
		theme.Hint.Render("[N] " + orDefault(bonus.Decline, "close")),
	}
	return theme.Overlay.Width(cw).Render(lipgloss.JoinVertical(lipgloss.Center, nonEmpty(inner)...))
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for _, p := range parts {
		if p == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}

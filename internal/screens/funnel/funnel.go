// Package funnel is the terminal presentation of a funnel session: it
// renders the current step and turns key presses into engine events.
package funnel

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/funnel/internal/checkout"
	eng "github.com/abhisek/funnel/internal/funnel"
	"github.com/abhisek/funnel/internal/router"
	"github.com/abhisek/funnel/internal/screen"
	"github.com/abhisek/funnel/internal/ui/components"
	"github.com/abhisek/funnel/internal/ui/layout"
	"github.com/abhisek/funnel/internal/ui/theme"
)

// SoundPlayer plays engine sounds. The cue dispatcher implements it.
type SoundPlayer interface {
	Sound(s eng.Sound)
}

// HandoffFunc builds the screen shown after the redirect.
type HandoffFunc func(url string, st eng.State, openErr error) screen.Screen

// Options holds the dependencies of a FunnelScreen.
type Options struct {
	Ctx     context.Context
	Session *eng.Session
	Sounds  SoundPlayer
	Opener  checkout.Opener
	Handoff HandoffFunc
	Logger  *zap.Logger
	Clock   func() time.Time // defaults to time.Now
}

// FunnelScreen implements screen.Screen for the whole funnel.
type FunnelScreen struct {
	ctx     context.Context
	session *eng.Session
	sounds  SoundPlayer
	opener  checkout.Opener
	handoff HandoffFunc
	log     *zap.Logger
	clock   func() time.Time

	step     int
	options  components.OptionList
	menu     components.Menu
	button   components.Button
	spinner  spinner.Model
	markdown *markdown

	timerGen int
	toast    int
	toastGen int
	leaving  bool
}

var _ screen.Screen = (*FunnelScreen)(nil)
var _ screen.KeyHintProvider = (*FunnelScreen)(nil)
var _ screen.StatusProvider = (*FunnelScreen)(nil)

// New creates the screen for a started session.
func New(opts Options) *FunnelScreen {
	s := &FunnelScreen{
		ctx:      opts.Ctx,
		session:  opts.Session,
		sounds:   opts.Sounds,
		opener:   opts.Opener,
		handoff:  opts.Handoff,
		log:      opts.Logger,
		clock:    opts.Clock,
		step:     -1,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Cursor)),
		markdown: newMarkdown(),
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	s.sync()
	return s
}

func (s *FunnelScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.scheduleNext())
}

func (s *FunnelScreen) Title() string {
	switch s.session.Screen().Kind {
	case eng.KindQuestion, eng.KindGate:
		return "MISSION"
	case eng.KindAnalysis:
		return "ANALYSIS"
	case eng.KindOffer:
		return "OFFER"
	default:
		return ""
	}
}

// Status reports mission, XP and level for the header.
func (s *FunnelScreen) Status() layout.Status {
	st := s.session.State()
	status := layout.Status{XP: st.Profile.XP, Level: st.Profile.Level}
	if s.session.Screen().IsQuestion() {
		status.Mission = st.Mission()
		status.Missions = eng.MissionCount
	}
	return status
}

func (s *FunnelScreen) KeyHints() []layout.KeyHint {
	st := s.session.State()
	if st.BonusVisible {
		return []layout.KeyHint{
			{Key: "Y", Description: "Claim bonus"},
			{Key: "N", Description: "Close"},
		}
	}
	switch s.session.Screen().Kind {
	case eng.KindQuestion, eng.KindGate:
		if st.HasSelection() {
			return nil
		}
		return []layout.KeyHint{
			{Key: "A-E", Description: "Choose"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Confirm"},
		}
	case eng.KindOffer:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
			{Key: "X", Description: "Decline"},
		}
	case eng.KindAnalysis:
		if st.AnalysisRunning || st.AnalysisProgress > 0 {
			return nil
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *FunnelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		if msg.gen != s.timerGen {
			return s, nil
		}
		return s, s.afterTransition(s.session.RunDue(s.ctx, s.clock()))

	case eventMsg:
		return s, s.dispatch(msg.ev)

	case toastDoneMsg:
		if msg.gen == s.toastGen {
			s.toast = 0
		}
		return s, nil

	case openedMsg:
		if msg.err != nil {
			s.log.Warn("open checkout failed", zap.String("url", msg.url), zap.Error(msg.err))
		}
		if s.handoff == nil {
			return s, tea.Quit
		}
		next := s.handoff(msg.url, s.session.State(), msg.err)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.leaving {
			return s, nil
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *FunnelScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	st := s.session.State()

	if st.BonusVisible {
		switch key {
		case "y", "enter", "space":
			return s.dispatch(eng.BonusAccept())
		case "n":
			return s.dispatch(eng.BonusDecline())
		}
		return nil
	}

	switch s.session.Screen().Kind {
	case eng.KindQuestion, eng.KindGate:
		if s.options.Locked() {
			return nil
		}
		if i, ok := s.options.KeyIndex(key); ok {
			return s.dispatch(eng.Choose(i))
		}
		if key == "enter" || key == "space" {
			return s.dispatch(eng.Choose(s.options.Cursor))
		}
		s.options = s.options.Update(msg)
		return nil

	case eng.KindOffer:
		if key == "x" {
			return s.dispatch(eng.Reject())
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd

	case eng.KindRejection:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd

	default:
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return cmd
	}
}

// dispatch sends a user event to the session. Events the current step
// does not accept are dropped.
func (s *FunnelScreen) dispatch(ev eng.Event) tea.Cmd {
	effects, err := s.session.Dispatch(s.ctx, ev, s.clock())
	if err != nil {
		if !errors.Is(err, eng.ErrIgnored) {
			s.log.Debug("event rejected", zap.Stringer("event", ev.Kind), zap.Error(err))
		}
		return nil
	}
	return s.afterTransition(effects)
}

// afterTransition carries out effects, refreshes widgets and arms the
// next timer.
func (s *FunnelScreen) afterTransition(effects []eng.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e.Kind {
		case eng.EffectSound:
			if s.sounds != nil {
				s.sounds.Sound(e.Sound)
			}
		case eng.EffectAward:
			s.toast = e.Points
			s.toastGen++
			gen := s.toastGen
			cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
				return toastDoneMsg{gen: gen}
			}))
		case eng.EffectRedirect:
			s.leaving = true
			cmds = append(cmds, s.openCheckout(e.URL))
		}
	}
	s.sync()
	cmds = append(cmds, s.scheduleNext())
	return tea.Batch(cmds...)
}

func (s *FunnelScreen) openCheckout(url string) tea.Cmd {
	ctx, opener := s.ctx, s.opener
	return func() tea.Msg {
		var err error
		if opener != nil {
			err = opener.Open(ctx, url)
		}
		return openedMsg{url: url, err: err}
	}
}

// scheduleNext arms a tick for the earliest pending timer. Older ticks
// are invalidated.
func (s *FunnelScreen) scheduleNext() tea.Cmd {
	due, ok := s.session.NextDue()
	if !ok {
		return nil
	}
	s.timerGen++
	gen := s.timerGen
	d := max(due.Sub(s.clock()), 0)
	return tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{gen: gen} })
}

// sync rebuilds the widgets when the step changes and mirrors the
// selection into the option list.
func (s *FunnelScreen) sync() {
	st := s.session.State()
	scr := s.session.Screen()
	cp := s.session.Catalog().Copy(st.Step)

	if st.Step != s.step {
		s.step = st.Step
		s.options = components.OptionList{}
		s.menu = components.Menu{}
		s.button = components.Button{}

		switch scr.Kind {
		case eng.KindQuestion, eng.KindGate:
			q, _ := s.session.Catalog().Question(scr.QuestionIndex)
			pass := -1
			if scr.Kind == eng.KindGate {
				pass = scr.PassOption
			}
			s.options = components.NewOptionList(q.Options, scr.Layout == eng.LayoutGrid2, pass)
		case eng.KindOffer:
			s.menu = components.NewMenu([]components.MenuItem{
				{Label: orDefault(cp.Action, "BUY NOW"), Action: func() tea.Cmd { return emit(eng.Accept()) }},
				{Label: orDefault(cp.Decline, "NO THANKS"), Action: func() tea.Cmd { return emit(eng.Reject()) }},
			})
		case eng.KindRejection:
			s.menu = components.NewMenu([]components.MenuItem{
				{Label: orDefault(cp.Action, "SECOND CHANCE"), Action: func() tea.Cmd { return emit(eng.Accept()) }},
			})
		case eng.KindAnalysis:
			s.button = components.NewButton(orDefault(cp.Action, "START"), true, func() tea.Cmd {
				return emit(eng.StartAnalysis())
			})
		default:
			s.button = components.NewButton(orDefault(cp.Action, "CONTINUE"), true, func() tea.Cmd {
				return emit(eng.Continue())
			})
		}
	}

	s.options.Chosen = st.Selected
	if scr.Kind == eng.KindAnalysis {
		s.button.Active = !st.AnalysisRunning && st.AnalysisProgress == 0
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

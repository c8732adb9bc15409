package funnel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/funnel/internal/content"
)

// Delays between the visible sub-states of a transition.
const (
	ClearDelay          = 0
	AdvanceDelay        = 400 * time.Millisecond
	GatePassDelay       = 400 * time.Millisecond
	GateFailDelay       = 1000 * time.Millisecond
	AnalysisTick        = 50 * time.Millisecond
	AnalysisStep        = 2
	AnalysisSettleDelay = 1500 * time.Millisecond
)

var (
	// ErrIgnored means the event does not apply to the current screen.
	ErrIgnored = errors.New("event ignored")

	// ErrStale means a timer fired after its step was left.
	ErrStale = errors.New("stale timer")

	// ErrInvalidOption means a choice outside the question's options.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownStep means a step outside the screen table.
	ErrUnknownStep = errors.New("unknown step")
)

// Rules are the per-deployment knobs of the engine.
type Rules struct {
	CheckoutURL string

	// PickLabel returns an index in [0, n). Nil means uniform random.
	PickLabel func(n int) int

	// LegacyRejection routes failures to step 17 instead of 18.
	LegacyRejection bool
}

func (r Rules) pick(n int) int {
	if r.PickLabel != nil {
		return r.PickLabel(n)
	}
	return rand.IntN(n)
}

func (r Rules) rejectionStep() int {
	if r.LegacyRejection {
		return StepLegacyRejection
	}
	return StepRejection
}

// Apply computes the state that follows ev. It is pure: s is not modified
// and effects are returned for the caller to perform. On error the input
// state is returned unchanged.
func Apply(cat *content.Catalog, s State, ev Event, rules Rules) (State, []Effect, error) {
	scr, err := ScreenAt(s.Step)
	if err != nil {
		return s, nil, err
	}
	if ev.IsTimer() && ev.Step != s.Step {
		return s, nil, ErrStale
	}
	if s.Redirected {
		return s, nil, ErrIgnored
	}

	// The bonus overlay captures input while it is open.
	switch ev.Kind {
	case EventBonusAccept, EventBonusDecline:
		if !s.BonusVisible {
			return s, nil, ErrIgnored
		}
		next := s.clone()
		next.BonusVisible = false
		if ev.Kind == EventBonusAccept {
			return next, []Effect{sound(SoundSuccess)}, nil
		}
		return next, nil, nil
	}
	if s.BonusVisible && !ev.IsTimer() {
		return s, nil, ErrIgnored
	}

	next := s.clone()
	var effects []Effect

	switch scr.Kind {
	case KindLanding, KindMilestone:
		if ev.Kind != EventContinue {
			return s, nil, ErrIgnored
		}
		next.Profile.AddXP(scr.XPAward)
		effects = append(effects, sound(scr.Sound))
		effects = append(effects, reward(scr.XPAward)...)
		next.enter(s.Step + 1)

	case KindQuestion:
		effects, err = applyQuestion(cat, scr, &next, ev)

	case KindGate:
		effects, err = applyGate(cat, scr, &next, ev, rules)

	case KindAnalysis:
		effects, err = applyAnalysis(cat, &next, ev, rules)

	case KindCompletion:
		if ev.Kind != EventContinue {
			return s, nil, ErrIgnored
		}
		gained := CompletionXP - next.Profile.XP
		next.Profile.ForceComplete(cat.Classification)
		effects = append(effects, sound(SoundSuccess))
		effects = append(effects, reward(gained)...)
		next.enter(StepOffer)

	case KindOffer:
		switch ev.Kind {
		case EventAccept:
			next.Redirected = true
			effects = append(effects, sound(SoundSuccess), redirect(rules.CheckoutURL))
		case EventReject:
			effects = append(effects, sound(SoundError))
			next.enter(rules.rejectionStep())
		default:
			return s, nil, ErrIgnored
		}

	case KindRejection:
		// A second chance leads to the same checkout.
		if ev.Kind != EventAccept && ev.Kind != EventContinue {
			return s, nil, ErrIgnored
		}
		next.Redirected = true
		effects = append(effects, sound(SoundSuccess), redirect(rules.CheckoutURL))

	default:
		return s, nil, fmt.Errorf("step %d: %w", s.Step, ErrUnknownStep)
	}

	if err != nil {
		return s, nil, err
	}
	return next, effects, nil
}

func applyQuestion(cat *content.Catalog, scr Screen, next *State, ev Event) ([]Effect, error) {
	switch ev.Kind {
	case EventChoose:
		// A selection, once made, cannot change.
		if next.Phase != PhaseIdle || next.HasSelection() {
			return nil, ErrIgnored
		}
		q, ok := cat.Question(scr.QuestionIndex)
		if !ok {
			return nil, fmt.Errorf("question %d: %w", scr.QuestionIndex, ErrUnknownStep)
		}
		if ev.Option < 0 || ev.Option >= len(q.Options) {
			return nil, fmt.Errorf("option %d of %d: %w", ev.Option, len(q.Options), ErrInvalidOption)
		}
		next.Selected = ev.Option
		next.Phase = PhaseSelected
		next.Profile.Answers = append(next.Profile.Answers, q.Options[ev.Option])
		next.Profile.AddXP(AnswerXP)
		effects := append([]Effect{sound(SoundClick)}, reward(AnswerXP)...)
		return append(effects, schedule(ClearDelay, Event{Kind: eventClear, Step: scr.Step})), nil

	case eventClear:
		if next.Phase != PhaseSelected {
			return nil, ErrStale
		}
		next.Phase = PhaseClearing
		return []Effect{
			sound(SoundTransition),
			schedule(AdvanceDelay, Event{Kind: eventAdvance, Step: scr.Step}),
		}, nil

	case eventAdvance:
		if next.Phase != PhaseClearing {
			return nil, ErrStale
		}
		next.Selected = NoSelection
		next.Phase = PhaseIdle
		// Ordinary answers never lead into the offer.
		if scr.Step+1 < StepOffer {
			next.enter(scr.Step + 1)
		}
		return nil, nil
	}
	return nil, ErrIgnored
}

func applyGate(cat *content.Catalog, scr Screen, next *State, ev Event, rules Rules) ([]Effect, error) {
	switch ev.Kind {
	case EventChoose:
		if next.Phase != PhaseIdle || next.HasSelection() {
			return nil, ErrIgnored
		}
		q, ok := cat.Question(scr.QuestionIndex)
		if !ok {
			return nil, fmt.Errorf("question %d: %w", scr.QuestionIndex, ErrUnknownStep)
		}
		if ev.Option < 0 || ev.Option >= len(q.Options) {
			return nil, fmt.Errorf("option %d of %d: %w", ev.Option, len(q.Options), ErrInvalidOption)
		}
		next.Selected = ev.Option
		next.Phase = PhaseAdvancing

		// The gate does not record an answer; only the pass branch scores.
		if ev.Option == scr.PassOption {
			next.Profile.AddXP(AnswerXP)
			effects := append([]Effect{sound(SoundClick)}, reward(AnswerXP)...)
			return append(effects, schedule(GatePassDelay, Event{Kind: eventJump, Step: scr.Step, Target: StepAfterGate, Sound: SoundTransition})), nil
		}
		return []Effect{
			sound(SoundError),
			schedule(GateFailDelay, Event{Kind: eventJump, Step: scr.Step, Target: rules.rejectionStep()}),
		}, nil

	case eventJump:
		if next.Phase != PhaseAdvancing {
			return nil, ErrStale
		}
		next.Selected = NoSelection
		next.Phase = PhaseIdle
		next.enter(ev.Target)
		if ev.Sound != SoundNone {
			return []Effect{sound(ev.Sound)}, nil
		}
		return nil, nil
	}
	return nil, ErrIgnored
}

func applyAnalysis(cat *content.Catalog, next *State, ev Event, rules Rules) ([]Effect, error) {
	switch ev.Kind {
	case EventStartAnalysis, EventContinue:
		// No start affordance once progress has begun.
		if next.AnalysisRunning || next.AnalysisProgress != 0 {
			return nil, ErrIgnored
		}
		next.AnalysisRunning = true
		return []Effect{
			schedule(AnalysisTick, Event{Kind: eventAnalysisTick, Step: StepAnalysis}),
		}, nil

	case eventAnalysisTick:
		if !next.AnalysisRunning {
			return nil, ErrStale
		}
		next.AnalysisProgress += AnalysisStep
		if next.AnalysisProgress < 100 {
			return []Effect{
				schedule(AnalysisTick, Event{Kind: eventAnalysisTick, Step: StepAnalysis}),
			}, nil
		}
		next.AnalysisProgress = 100
		next.AnalysisRunning = false
		next.Profile.PsychProfile = cat.ProfileLabels[rules.pick(len(cat.ProfileLabels))]
		next.Profile.IsElite = true
		next.Phase = PhaseAdvancing
		return []Effect{
			schedule(AnalysisSettleDelay, Event{Kind: eventJump, Step: StepAnalysis, Target: StepCompletion, Sound: SoundSuccess}),
		}, nil

	case eventJump:
		if next.Phase != PhaseAdvancing {
			return nil, ErrStale
		}
		next.Phase = PhaseIdle
		next.enter(ev.Target)
		return []Effect{sound(ev.Sound)}, nil
	}
	return nil, ErrIgnored
}

// enter moves to step and applies the bonus overlay rule.
func (s *State) enter(step int) {
	s.Step = step
	s.Visited = append(s.Visited, step)
	switch {
	case step == StepOffer && !s.BonusShown:
		s.BonusVisible = true
		s.BonusShown = true
	case step != StepOffer:
		s.BonusVisible = false
	}
}

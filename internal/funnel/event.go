package funnel

import (
	"fmt"
	"time"
)

// EventKind identifies an input to the engine.
type EventKind int

const (
	EventContinue EventKind = iota
	EventChoose
	EventStartAnalysis
	EventAccept
	EventReject
	EventBonusAccept
	EventBonusDecline

	// Timer events, only ever produced by Schedule effects.
	eventClear
	eventAdvance
	eventJump
	eventAnalysisTick
)

func (k EventKind) String() string {
	switch k {
	case EventContinue:
		return "continue"
	case EventChoose:
		return "choose"
	case EventStartAnalysis:
		return "start_analysis"
	case EventAccept:
		return "accept"
	case EventReject:
		return "reject"
	case EventBonusAccept:
		return "bonus_accept"
	case EventBonusDecline:
		return "bonus_decline"
	case eventClear:
		return "clear"
	case eventAdvance:
		return "advance"
	case eventJump:
		return "jump"
	case eventAnalysisTick:
		return "analysis_tick"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one input to Apply.
type Event struct {
	Kind   EventKind
	Option int // EventChoose

	// Timer fields.
	Step   int   // step the timer was scheduled on
	Target int   // eventJump destination
	Sound  Sound // played when a jump lands
}

// IsTimer reports whether the event came from a Schedule effect.
func (e Event) IsTimer() bool {
	return e.Kind >= eventClear
}

// Constructors for the user-driven events.
func Continue() Event         { return Event{Kind: EventContinue} }
func Choose(option int) Event { return Event{Kind: EventChoose, Option: option} }
func StartAnalysis() Event    { return Event{Kind: EventStartAnalysis} }
func Accept() Event           { return Event{Kind: EventAccept} }
func Reject() Event           { return Event{Kind: EventReject} }
func BonusAccept() Event      { return Event{Kind: EventBonusAccept} }
func BonusDecline() Event     { return Event{Kind: EventBonusDecline} }

// Sound names a short synthesized UI sound.
type Sound string

const (
	SoundNone       Sound = ""
	SoundClick      Sound = "click"
	SoundXP         Sound = "xp"
	SoundTransition Sound = "transition"
	SoundSuccess    Sound = "success"
	SoundError      Sound = "error"
)

// EffectKind identifies a side effect requested by Apply.
type EffectKind int

const (
	EffectSchedule EffectKind = iota
	EffectSound
	EffectAward
	EffectRedirect
)

// Effect is a side effect for the caller to carry out. Apply never
// performs effects itself.
type Effect struct {
	Kind   EffectKind
	After  time.Duration // EffectSchedule
	Event  Event         // EffectSchedule
	Sound  Sound         // EffectSound
	Points int           // EffectAward
	URL    string        // EffectRedirect
}

func schedule(after time.Duration, ev Event) Effect {
	return Effect{Kind: EffectSchedule, After: after, Event: ev}
}

func sound(s Sound) Effect {
	return Effect{Kind: EffectSound, Sound: s}
}

func award(points int) Effect {
	return Effect{Kind: EffectAward, Points: points}
}

// reward pairs an award with the xp sound.
func reward(points int) []Effect {
	if points <= 0 {
		return nil
	}
	return []Effect{award(points), sound(SoundXP)}
}

func redirect(url string) Effect {
	return Effect{Kind: EffectRedirect, URL: url}
}

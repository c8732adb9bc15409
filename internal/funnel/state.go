package funnel

import "slices"

// Phase tracks the timed sub-states between a choice and the next screen.
type Phase int

const (
	// PhaseIdle accepts a new choice.
	PhaseIdle Phase = iota
	// PhaseSelected holds the highlighted choice until the clear tick.
	PhaseSelected
	// PhaseClearing waits for the advance tick.
	PhaseClearing
	// PhaseAdvancing waits for a scheduled jump to another step.
	PhaseAdvancing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelected:
		return "selected"
	case PhaseClearing:
		return "clearing"
	case PhaseAdvancing:
		return "advancing"
	default:
		return "unknown"
	}
}

// NoSelection marks State.Selected when no option is chosen.
const NoSelection = -1

// State is the whole engine state for one session.
type State struct {
	Step     int
	Profile  Profile
	Selected int
	Phase    Phase

	AnalysisProgress int
	AnalysisRunning  bool

	// BonusVisible is the overlay on the offer screen; BonusShown makes it one-shot.
	BonusVisible bool
	BonusShown   bool

	// Redirected is set once the visitor leaves for checkout.
	Redirected bool

	// Visited lists every step rendered, in order.
	Visited []int
}

// NewState returns the state at session start.
func NewState() State {
	return State{
		Step:     StepLanding,
		Profile:  NewProfile(),
		Selected: NoSelection,
		Visited:  []int{StepLanding},
	}
}

// HasSelection reports whether an option is currently held.
func (s State) HasSelection() bool {
	return s.Selected != NoSelection
}

// Mission returns the display mission number for the current step.
func (s State) Mission() int {
	return MissionNumber(s.Step)
}

// clone returns a copy that shares no slices with s.
func (s State) clone() State {
	s.Profile = s.Profile.clone()
	s.Visited = slices.Clone(s.Visited)
	return s
}

package cue

import "github.com/abhisek/funnel/internal/funnel"

// route is a step transition.
type route struct{ from, to int }

// Trigger decides which tracks a transition plays. It holds no state;
// the ambient loop's lifetime belongs to the Dispatcher.
type Trigger struct {
	// Entry maps a step to the track played whenever it is entered.
	Entry map[int]Cue

	// Route maps a specific transition to its tracks, for cues tied to an
	// action rather than a screen.
	Route map[route][]Cue

	// Answer maps a question index to the track played when it is answered.
	Answer map[int]Cue
}

// DefaultTrigger returns the standard cue table.
func DefaultTrigger() *Trigger {
	return &Trigger{
		Entry: map[int]Cue{
			5:  Presentation,
			7:  GhostLaugh,
			13: VideoIntro,
		},
		Route: map[route][]Cue{
			{funnel.StepLanding, 1}:                        {AmbientLoop, IntroVoice},
			{8, funnel.StepGate}:                           {Deserve},
			{funnel.StepCompletion, funnel.StepOffer}:      {DoorOpening},
			{funnel.StepOffer, funnel.StepRejection}:       {ReadYou},
			{funnel.StepOffer, funnel.StepLegacyRejection}: {ReadYou},
		},
		Answer: map[int]Cue{
			3: BlackCard,
			8: ActivateNow,
		},
	}
}

// Cues returns the tracks to play for the transition prev -> next.
func (t *Trigger) Cues(prev, next funnel.State) []Cue {
	var cues []Cue

	if prev.Step != next.Step {
		cues = append(cues, t.Route[route{prev.Step, next.Step}]...)
		if c, ok := t.Entry[next.Step]; ok {
			cues = append(cues, c)
		}
	}

	if len(next.Profile.Answers) > len(prev.Profile.Answers) {
		scr, err := funnel.ScreenAt(prev.Step)
		if err == nil && scr.Kind == funnel.KindQuestion {
			if c, ok := t.Answer[scr.QuestionIndex]; ok {
				cues = append(cues, c)
			}
		}
	}
	return cues
}

package funnel

import (
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/funnel/internal/content"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return cat
}

func stateAt(step int) State {
	s := NewState()
	s.Step = step
	s.Visited = []int{step}
	return s
}

func hasEffect(effects []Effect, kind EffectKind) (Effect, bool) {
	for _, e := range effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1899, 19},
		{1900, 20},
		{1950, 20},
		{5000, 20},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	p := NewProfile()
	p.AddXP(0)
	p.AddXP(-10)
	if p.XP != 0 || p.Level != 1 {
		t.Errorf("profile = %+v, want zero xp at level 1", p)
	}
}

func TestMissionNumber(t *testing.T) {
	want := map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 6: 5, 7: 6, 9: 7, 11: 8, 12: 9}
	for step := 0; step < StepCount; step++ {
		expected, ok := want[step]
		if !ok {
			expected = 1
		}
		if got := MissionNumber(step); got != expected {
			t.Errorf("MissionNumber(%d) = %d, want %d", step, got, expected)
		}
	}
}

func TestScreenTable(t *testing.T) {
	screens := Screens()
	if len(screens) != StepCount {
		t.Fatalf("expected %d screens, got %d", StepCount, len(screens))
	}
	for i, scr := range screens {
		if scr.Step != i {
			t.Errorf("screens[%d].Step = %d", i, scr.Step)
		}
	}
	if _, err := ScreenAt(StepCount); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("ScreenAt(%d) err = %v, want ErrUnknownStep", StepCount, err)
	}
	if _, err := ScreenAt(-1); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("ScreenAt(-1) err = %v, want ErrUnknownStep", err)
	}
}

func TestLandingContinue(t *testing.T) {
	cat := testCatalog(t)
	next, effects, err := Apply(cat, NewState(), Continue(), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.Step != 1 || next.Profile.XP != 50 {
		t.Errorf("step=%d xp=%d, want step=1 xp=50", next.Step, next.Profile.XP)
	}
	if e, ok := hasEffect(effects, EffectAward); !ok || e.Points != 50 {
		t.Errorf("expected award of 50, got %+v", effects)
	}
}

func sounds(effects []Effect) []Sound {
	var out []Sound
	for _, e := range effects {
		if e.Kind == EffectSound {
			out = append(out, e.Sound)
		}
	}
	return out
}

func TestAwardsPlayXPSound(t *testing.T) {
	cat := testCatalog(t)

	_, effects, err := Apply(cat, NewState(), Continue(), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := sounds(effects); !slices.Equal(got, []Sound{SoundTransition, SoundXP}) {
		t.Errorf("landing sounds = %v", got)
	}

	_, effects, err = Apply(cat, stateAt(1), Choose(0), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := sounds(effects); !slices.Equal(got, []Sound{SoundClick, SoundXP}) {
		t.Errorf("answer sounds = %v", got)
	}

	done := stateAt(StepCompletion)
	done.Profile.AddXP(CompletionXP)
	_, effects, err = Apply(cat, done, Continue(), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, ok := hasEffect(effects, EffectAward); ok {
		t.Errorf("completion at full xp awarded points: %+v", effects)
	}
	if got := sounds(effects); !slices.Equal(got, []Sound{SoundSuccess}) {
		t.Errorf("completion sounds = %v", got)
	}
}

func TestMilestoneAwards(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		step int
		xp   int
	}{
		{5, 50},
		{8, 500},
		{10, 50},
		{13, 1000},
	}
	for _, tt := range tests {
		next, _, err := Apply(cat, stateAt(tt.step), Continue(), Rules{})
		if err != nil {
			t.Fatalf("step %d: %v", tt.step, err)
		}
		if next.Step != tt.step+1 {
			t.Errorf("step %d advanced to %d", tt.step, next.Step)
		}
		if next.Profile.XP != tt.xp {
			t.Errorf("step %d awarded %d xp, want %d", tt.step, next.Profile.XP, tt.xp)
		}
		if next.Profile.Level != LevelFor(next.Profile.XP) {
			t.Errorf("step %d: level %d does not match xp %d", tt.step, next.Profile.Level, next.Profile.XP)
		}
	}
}

func TestAnswerAppendsAndAwards(t *testing.T) {
	cat := testCatalog(t)
	for _, step := range []int{1, 2, 3, 4, 6, 7, 11, 12} {
		s := stateAt(step)
		s.Profile.Answers = []string{"earlier"}
		next, effects, err := Apply(cat, s, Choose(0), Rules{})
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if len(next.Profile.Answers) != 2 {
			t.Errorf("step %d: answers = %v, want one appended", step, next.Profile.Answers)
		}
		if next.Profile.XP != 25 {
			t.Errorf("step %d: xp = %d, want 25", step, next.Profile.XP)
		}
		if next.Step != step || next.Phase != PhaseSelected || next.Selected != 0 {
			t.Errorf("step %d: state = step %d phase %v selected %d", step, next.Step, next.Phase, next.Selected)
		}
		if e, ok := hasEffect(effects, EffectSchedule); !ok || e.After != ClearDelay {
			t.Errorf("step %d: expected clear timer, got %+v", step, effects)
		}
		// The input state is untouched.
		if len(s.Profile.Answers) != 1 || s.Profile.XP != 0 {
			t.Errorf("step %d: Apply mutated its input", step)
		}
	}
}

func TestAnswerRecordsOptionText(t *testing.T) {
	cat := testCatalog(t)
	next, _, err := Apply(cat, stateAt(1), Choose(2), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	q, _ := cat.Question(0)
	if got := next.Profile.Answers[0]; got != q.Options[2] {
		t.Errorf("answer = %q, want %q", got, q.Options[2])
	}
}

func TestSelectionCannotChange(t *testing.T) {
	cat := testCatalog(t)
	s, _, err := Apply(cat, stateAt(1), Choose(1), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	_, _, err = Apply(cat, s, Choose(0), Rules{})
	if !errors.Is(err, ErrIgnored) {
		t.Errorf("second choice err = %v, want ErrIgnored", err)
	}
}

func TestInvalidOption(t *testing.T) {
	cat := testCatalog(t)
	for _, opt := range []int{-1, 2, 9} {
		// Question 2 has two options.
		_, _, err := Apply(cat, stateAt(2), Choose(opt), Rules{})
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("Choose(%d) err = %v, want ErrInvalidOption", opt, err)
		}
	}
}

func TestWrongEventIgnored(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		name string
		step int
		ev   Event
	}{
		{"choose on landing", 0, Choose(0)},
		{"continue on question", 1, Continue()},
		{"accept on milestone", 5, Accept()},
		{"reject on completion", 15, Reject()},
		{"continue on offer", 16, Continue()},
		{"bonus without overlay", 16, BonusAccept()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply(cat, stateAt(tt.step), tt.ev, Rules{})
			if !errors.Is(err, ErrIgnored) {
				t.Errorf("err = %v, want ErrIgnored", err)
			}
		})
	}
}

func TestStaleTimer(t *testing.T) {
	cat := testCatalog(t)
	_, _, err := Apply(cat, stateAt(3), Event{Kind: eventAdvance, Step: 1}, Rules{})
	if !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
	// Right step, wrong phase.
	_, _, err = Apply(cat, stateAt(3), Event{Kind: eventAdvance, Step: 3}, Rules{})
	if !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
}

func TestGate(t *testing.T) {
	cat := testCatalog(t)

	t.Run("pass", func(t *testing.T) {
		s := stateAt(StepGate)
		s.Profile.Answers = []string{"a"}
		next, effects, err := Apply(cat, s, Choose(3), Rules{})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if next.Profile.XP != 25 || len(next.Profile.Answers) != 1 {
			t.Errorf("xp=%d answers=%v, want 25 and unchanged", next.Profile.XP, next.Profile.Answers)
		}
		e, ok := hasEffect(effects, EffectSchedule)
		if !ok || e.Event.Target != StepAfterGate || e.After != GatePassDelay {
			t.Fatalf("expected jump to %d, got %+v", StepAfterGate, effects)
		}
		landed, _, err := Apply(cat, next, e.Event, Rules{})
		if err != nil {
			t.Fatalf("jump: %v", err)
		}
		if landed.Step != StepAfterGate || landed.Phase != PhaseIdle || landed.HasSelection() {
			t.Errorf("landed at step %d phase %v selected %d", landed.Step, landed.Phase, landed.Selected)
		}
	})

	for _, opt := range []int{0, 1, 2} {
		next, effects, err := Apply(cat, stateAt(StepGate), Choose(opt), Rules{})
		if err != nil {
			t.Fatalf("option %d: %v", opt, err)
		}
		if next.Profile.XP != 0 || len(next.Profile.Answers) != 0 {
			t.Errorf("option %d: xp=%d answers=%v, want no change", opt, next.Profile.XP, next.Profile.Answers)
		}
		if e, ok := hasEffect(effects, EffectSound); !ok || e.Sound != SoundError {
			t.Errorf("option %d: expected error cue, got %+v", opt, effects)
		}
		e, ok := hasEffect(effects, EffectSchedule)
		if !ok || e.Event.Target != StepRejection || e.After != GateFailDelay {
			t.Errorf("option %d: expected jump to %d, got %+v", opt, StepRejection, effects)
		}
	}
}

func TestLegacyRejection(t *testing.T) {
	cat := testCatalog(t)
	rules := Rules{LegacyRejection: true}

	_, effects, err := Apply(cat, stateAt(StepGate), Choose(0), rules)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if e, _ := hasEffect(effects, EffectSchedule); e.Event.Target != StepLegacyRejection {
		t.Errorf("gate failure target = %d, want %d", e.Event.Target, StepLegacyRejection)
	}

	next, _, err := Apply(cat, stateAt(StepOffer), Reject(), rules)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if next.Step != StepLegacyRejection {
		t.Errorf("decline step = %d, want %d", next.Step, StepLegacyRejection)
	}
}

func TestCompletion(t *testing.T) {
	cat := testCatalog(t)
	s := stateAt(StepCompletion)
	s.Profile.AddXP(1875)

	next, effects, err := Apply(cat, s, Continue(), Rules{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.Profile.XP != CompletionXP || next.Profile.Level != MaxLevel {
		t.Errorf("xp=%d level=%d, want %d/%d", next.Profile.XP, next.Profile.Level, CompletionXP, MaxLevel)
	}
	if next.Profile.Classification != cat.Classification {
		t.Errorf("classification = %q, want %q", next.Profile.Classification, cat.Classification)
	}
	if next.Step != StepOffer || !next.BonusVisible || !next.BonusShown {
		t.Errorf("step=%d bonus=%v/%v, want offer with overlay", next.Step, next.BonusVisible, next.BonusShown)
	}
	if e, ok := hasEffect(effects, EffectAward); !ok || e.Points != 75 {
		t.Errorf("expected award of 75, got %+v", effects)
	}
}

func TestBonusOverlay(t *testing.T) {
	cat := testCatalog(t)
	s := stateAt(StepCompletion)
	s, _, err := Apply(cat, s, Continue(), Rules{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	// The overlay captures input.
	if _, _, err := Apply(cat, s, Reject(), Rules{}); !errors.Is(err, ErrIgnored) {
		t.Errorf("reject under overlay err = %v, want ErrIgnored", err)
	}

	closed, effects, err := Apply(cat, s, BonusAccept(), Rules{})
	if err != nil {
		t.Fatalf("bonus accept: %v", err)
	}
	if closed.BonusVisible || closed.Step != StepOffer || closed.Profile.XP != s.Profile.XP {
		t.Errorf("accept changed more than visibility: %+v", closed)
	}
	if e, ok := hasEffect(effects, EffectSound); !ok || e.Sound != SoundSuccess {
		t.Errorf("expected success cue, got %+v", effects)
	}

	declined, effects, err := Apply(cat, s, BonusDecline(), Rules{})
	if err != nil {
		t.Fatalf("bonus decline: %v", err)
	}
	if declined.BonusVisible || len(effects) != 0 {
		t.Errorf("decline: visible=%v effects=%+v", declined.BonusVisible, effects)
	}

	// Revisiting the offer never reopens the overlay.
	declined.enter(StepRejection)
	declined.enter(StepOffer)
	if declined.BonusVisible {
		t.Error("overlay reopened on revisit")
	}
}

func TestOffer(t *testing.T) {
	cat := testCatalog(t)
	rules := Rules{CheckoutURL: "https://example.com/pay"}

	next, effects, err := Apply(cat, stateAt(StepOffer), Accept(), rules)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !next.Redirected {
		t.Error("expected redirected state")
	}
	if e, ok := hasEffect(effects, EffectRedirect); !ok || e.URL != rules.CheckoutURL {
		t.Errorf("expected redirect to %s, got %+v", rules.CheckoutURL, effects)
	}

	// Redirect is terminal.
	if _, _, err := Apply(cat, next, Reject(), rules); !errors.Is(err, ErrIgnored) {
		t.Errorf("event after redirect err = %v, want ErrIgnored", err)
	}

	declined, _, err := Apply(cat, stateAt(StepOffer), Reject(), rules)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if declined.Step != StepRejection {
		t.Errorf("decline step = %d, want %d", declined.Step, StepRejection)
	}
}

func TestRejectionSecondChance(t *testing.T) {
	cat := testCatalog(t)
	rules := Rules{CheckoutURL: "https://example.com/pay"}
	for _, step := range []int{StepLegacyRejection, StepRejection} {
		next, effects, err := Apply(cat, stateAt(step), Continue(), rules)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if _, ok := hasEffect(effects, EffectRedirect); !ok || !next.Redirected {
			t.Errorf("step %d: expected redirect, got %+v", step, effects)
		}
	}
}

func TestAnalysis(t *testing.T) {
	cat := testCatalog(t)
	rules := Rules{PickLabel: func(n int) int { return n - 1 }}

	s, effects, err := Apply(cat, stateAt(StepAnalysis), StartAnalysis(), rules)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.AnalysisRunning {
		t.Fatal("analysis not running")
	}
	if _, _, err := Apply(cat, s, StartAnalysis(), rules); !errors.Is(err, ErrIgnored) {
		t.Errorf("second start err = %v, want ErrIgnored", err)
	}

	ticks := 0
	last := 0
	for {
		e, ok := hasEffect(effects, EffectSchedule)
		if !ok {
			t.Fatal("analysis stopped without a jump")
		}
		if e.Event.Kind == eventJump {
			if e.After != AnalysisSettleDelay || e.Event.Target != StepCompletion {
				t.Errorf("unexpected jump %+v", e)
			}
			s, effects, err = Apply(cat, s, e.Event, rules)
			if err != nil {
				t.Fatalf("jump: %v", err)
			}
			break
		}
		s, effects, err = Apply(cat, s, e.Event, rules)
		if err != nil {
			t.Fatalf("tick %d: %v", ticks, err)
		}
		ticks++
		if s.AnalysisProgress < last {
			t.Fatalf("progress decreased from %d to %d", last, s.AnalysisProgress)
		}
		last = s.AnalysisProgress
	}

	if ticks != 50 || last != 100 {
		t.Errorf("ticks=%d progress=%d, want 50 and 100", ticks, last)
	}
	if s.Step != StepCompletion {
		t.Errorf("step = %d, want %d", s.Step, StepCompletion)
	}
	if s.Profile.PsychProfile != "SHADOW SELLER" || !s.Profile.IsElite {
		t.Errorf("profile = %q elite=%v", s.Profile.PsychProfile, s.Profile.IsElite)
	}
	if e, ok := hasEffect(effects, EffectSound); !ok || e.Sound != SoundSuccess {
		t.Errorf("expected success cue on landing, got %+v", effects)
	}
}

func TestAnalysisNoRestartOnceProgressed(t *testing.T) {
	cat := testCatalog(t)
	s := stateAt(StepAnalysis)
	s.AnalysisProgress = 100
	if _, _, err := Apply(cat, s, StartAnalysis(), Rules{}); !errors.Is(err, ErrIgnored) {
		t.Errorf("err = %v, want ErrIgnored", err)
	}
}

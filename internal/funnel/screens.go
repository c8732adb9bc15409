package funnel

// Kind identifies what a screen does. Each kind reads only the Screen
// fields it needs.
type Kind int

const (
	KindLanding    Kind = iota // XPAward, Sound
	KindQuestion               // QuestionIndex, Layout, Mission
	KindMilestone              // XPAward, Sound
	KindGate                   // QuestionIndex, PassOption, Mission
	KindAnalysis
	KindCompletion
	KindOffer
	KindRejection // Legacy
)

func (k Kind) String() string {
	switch k {
	case KindLanding:
		return "landing"
	case KindQuestion:
		return "question"
	case KindMilestone:
		return "milestone"
	case KindGate:
		return "gate"
	case KindAnalysis:
		return "analysis"
	case KindCompletion:
		return "completion"
	case KindOffer:
		return "offer"
	case KindRejection:
		return "rejection"
	default:
		return "unknown"
	}
}

// Layout is how a question's options are arranged.
type Layout int

const (
	LayoutList Layout = iota
	LayoutGrid2
)

// Well-known steps.
const (
	StepLanding         = 0
	StepGate            = 9
	StepAfterGate       = 10
	StepAnalysis        = 14
	StepCompletion      = 15
	StepOffer           = 16
	StepLegacyRejection = 17
	StepRejection       = 18

	StepCount    = 19
	MissionCount = 9
)

// Screen describes one step of the funnel.
type Screen struct {
	Step          int
	Kind          Kind
	QuestionIndex int
	Layout        Layout
	XPAward       int
	Sound         Sound
	PassOption    int
	Mission       int // 1..MissionCount on question and gate screens, 0 elsewhere
	Legacy        bool
}

// IsQuestion reports whether the screen presents a catalog question.
func (s Screen) IsQuestion() bool {
	return s.Kind == KindQuestion || s.Kind == KindGate
}

var screens = [StepCount]Screen{
	{Step: 0, Kind: KindLanding, XPAward: 50, Sound: SoundTransition},
	{Step: 1, Kind: KindQuestion, QuestionIndex: 0, Mission: 1},
	{Step: 2, Kind: KindQuestion, QuestionIndex: 1, Layout: LayoutGrid2, Mission: 2},
	{Step: 3, Kind: KindQuestion, QuestionIndex: 2, Mission: 3},
	{Step: 4, Kind: KindQuestion, QuestionIndex: 3, Mission: 4},
	{Step: 5, Kind: KindMilestone, XPAward: 50, Sound: SoundTransition},
	{Step: 6, Kind: KindQuestion, QuestionIndex: 4, Mission: 5},
	{Step: 7, Kind: KindQuestion, QuestionIndex: 5, Mission: 6},
	{Step: 8, Kind: KindMilestone, XPAward: 500, Sound: SoundSuccess},
	{Step: 9, Kind: KindGate, QuestionIndex: 6, PassOption: 3, Mission: 7},
	{Step: 10, Kind: KindMilestone, XPAward: 50, Sound: SoundTransition},
	{Step: 11, Kind: KindQuestion, QuestionIndex: 7, Mission: 8},
	{Step: 12, Kind: KindQuestion, QuestionIndex: 8, Mission: 9},
	{Step: 13, Kind: KindMilestone, XPAward: 1000, Sound: SoundSuccess},
	{Step: 14, Kind: KindAnalysis},
	{Step: 15, Kind: KindCompletion},
	{Step: 16, Kind: KindOffer},
	{Step: 17, Kind: KindRejection, Legacy: true},
	{Step: 18, Kind: KindRejection},
}

// Screens returns the fixed screen table, indexed by step.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens[:])
	return out
}

// ScreenAt returns the screen for step.
func ScreenAt(step int) (Screen, error) {
	if step < 0 || step >= StepCount {
		return Screen{}, ErrUnknownStep
	}
	return screens[step], nil
}

// MissionNumber maps a step to the compact 1..9 counter shown on question
// screens. Steps that are not missions report 1.
func MissionNumber(step int) int {
	s, err := ScreenAt(step)
	if err != nil || s.Mission == 0 {
		return 1
	}
	return s.Mission
}

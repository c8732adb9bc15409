package funnel

import "slices"

const (
	MaxLevel     = 20
	XPPerLevel   = 100
	AnswerXP     = 25
	CompletionXP = 1950
)

// Profile is the visitor's score state. It lives only as long as the session.
type Profile struct {
	XP             int
	Level          int
	Answers        []string
	PsychProfile   string
	IsElite        bool
	Classification string // empty until completion
}

// NewProfile returns a zeroed profile at level 1.
func NewProfile() Profile {
	return Profile{Level: 1}
}

// LevelFor derives the level for an XP total: floor(xp/100)+1, capped at 20.
func LevelFor(xp int) int {
	level := xp/XPPerLevel + 1
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// AddXP awards points and recomputes the level. Negative awards are ignored.
func (p *Profile) AddXP(points int) {
	if points <= 0 {
		return
	}
	p.XP += points
	p.Level = LevelFor(p.XP)
}

// ForceComplete sets the completion score and classification together.
func (p *Profile) ForceComplete(classification string) {
	p.XP = CompletionXP
	p.Level = MaxLevel
	p.Classification = classification
}

// clone returns a copy that shares no slices with p.
func (p Profile) clone() Profile {
	p.Answers = slices.Clone(p.Answers)
	return p
}

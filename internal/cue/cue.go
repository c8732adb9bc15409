// Package cue maps funnel transitions to media playback. Playback is
// best-effort: failures are logged and never reach the funnel.
package cue

import "github.com/abhisek/funnel/internal/funnel"

// Cue is one media playback request.
type Cue struct {
	Name   string
	Source string  // URL or local path; empty for synthesized sounds
	Volume float64 // 0..1
	Loop   bool
}

// Synth reports whether the cue is a synthesized UI sound.
func (c Cue) Synth() bool {
	return c.Source == ""
}

// SoundCue wraps an engine sound as a synthesized cue.
func SoundCue(s funnel.Sound) Cue {
	return Cue{Name: string(s), Volume: 1}
}

const assetHost = "https://asuavidabela.online/wp-content/uploads/2025/12/"

// Tracks known to the trigger.
var (
	AmbientLoop  = Cue{Name: "ambient", Source: assetHost + "audio-gamificado.mp3", Volume: 0.3, Loop: true}
	IntroVoice   = Cue{Name: "intro-voice", Source: "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/coringaOlhadireito-86R9IRadwB1LxuYmRSquxNv487q8Yg.wav", Volume: 0.8}
	Presentation = Cue{Name: "presentation", Source: assetHost + "CoringaA-Cai.co_.__.mp3", Volume: 0.8}
	GhostLaugh   = Cue{Name: "ghost-laugh", Source: "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/risadafantasma-FnIfHYOOKwunrsXFxjOPTrfh1CISdZ.wav", Volume: 0.7}
	Deserve      = Cue{Name: "deserve", Source: "media/coringa-vocemerece.mp3", Volume: 0.7}
	VideoIntro   = Cue{Name: "video-intro", Source: assetHost + "CoringaPare-.ersa_.mp3", Volume: 0.8}
	DoorOpening  = Cue{Name: "door-opening", Source: "media/door-opening.mp3", Volume: 0.7}
	ReadYou      = Cue{Name: "read-you", Source: "media/coringa-voceseleu.mp3", Volume: 0.8}
	BlackCard    = Cue{Name: "black-card", Source: "media/coringa-ocadudoblack.wav", Volume: 0.7}
	ActivateNow  = Cue{Name: "activate-now", Source: "media/coringa-ativeagora.wav", Volume: 0.7}
)

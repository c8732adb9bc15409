package cue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/funnel/internal/funnel"
)

// playTimeout bounds a one-shot track.
const playTimeout = 2 * time.Minute

// Dispatcher plays cues in the background. It observes a funnel session
// and never reports failures back to it.
type Dispatcher struct {
	trigger *Trigger
	tracks  Player
	synth   Player
	ambient *Ambient
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// DispatcherOptions configures a Dispatcher. Nil players mean Nop.
type DispatcherOptions struct {
	Trigger *Trigger
	Tracks  Player
	Synth   Player
	Logger  *zap.Logger
}

// NewDispatcher creates a dispatcher. Call Close when the session ends.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		trigger: opts.Trigger,
		tracks:  opts.Tracks,
		synth:   opts.Synth,
		log:     opts.Logger,
	}
	if d.trigger == nil {
		d.trigger = DefaultTrigger()
	}
	if d.tracks == nil {
		d.tracks = Nop{}
	}
	if d.synth == nil {
		d.synth = Nop{}
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	d.ambient = NewAmbient(d.tracks, d.log)
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

// Observe implements funnel.Observer.
func (d *Dispatcher) Observe(prev, next funnel.State) {
	d.Fire(d.trigger.Cues(prev, next)...)
}

// Sound plays an engine sound.
func (d *Dispatcher) Sound(s funnel.Sound) {
	if s == funnel.SoundNone {
		return
	}
	d.Fire(SoundCue(s))
}

// Fire starts every cue without waiting. Looping cues go to the session's
// ambient loop.
func (d *Dispatcher) Fire(cues ...Cue) {
	if d.ctx.Err() != nil {
		return
	}
	for _, c := range cues {
		if c.Loop {
			d.ambient.Start(c)
			continue
		}
		player := d.tracks
		if c.Synth() {
			player = d.synth
		}

		d.wg.Add(1)
		go func(c Cue) {
			defer d.wg.Done()
			ctx, cancel := context.WithTimeout(d.ctx, playTimeout)
			defer cancel()
			if err := player.Play(ctx, c); err != nil && d.ctx.Err() == nil {
				d.log.Warn("cue playback failed", zap.String("cue", c.Name), zap.Error(err))
			}
		}(c)
	}
}

// Ambient returns the session's background loop.
func (d *Dispatcher) Ambient() *Ambient {
	return d.ambient
}

// Close stops the ambient loop, cancels playing tracks and waits for them.
func (d *Dispatcher) Close() {
	d.cancel()
	d.ambient.Stop()
	d.wg.Wait()
}

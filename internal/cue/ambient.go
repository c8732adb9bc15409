package cue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// loopGap separates loop iterations so a player that returns at once
// does not spin.
const loopGap = time.Second

// Ambient owns the background loop of one session. Start and Stop are
// idempotent.
type Ambient struct {
	player Player
	log    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAmbient returns a stopped loop that plays through player.
func NewAmbient(player Player, log *zap.Logger) *Ambient {
	return &Ambient{player: player, log: log}
}

// Start begins looping c unless a loop is already running.
func (a *Ambient) Start(c Cue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	go func() {
		defer close(done)
		for ctx.Err() == nil {
			if err := a.player.Play(ctx, c); err != nil {
				if ctx.Err() == nil {
					a.log.Warn("ambient loop stopped", zap.String("cue", c.Name), zap.Error(err))
				}
				return
			}
			if !c.Loop {
				return
			}
			select {
			case <-ctx.Done():
			case <-time.After(loopGap):
			}
		}
	}()
}

// Running reports whether a loop has been started and not stopped.
func (a *Ambient) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Stop ends the loop and waits for the player to return.
func (a *Ambient) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

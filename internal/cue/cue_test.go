package cue

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/funnel/internal/funnel"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingPlayer records played cues. Loop cues block until cancelled.
type recordingPlayer struct {
	mu     sync.Mutex
	played []string
	err    error
}

func (p *recordingPlayer) Play(ctx context.Context, c Cue) error {
	p.mu.Lock()
	p.played = append(p.played, c.Name)
	p.mu.Unlock()
	if c.Loop {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.err
}

func (p *recordingPlayer) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

func stateAt(step int) funnel.State {
	s := funnel.NewState()
	s.Step = step
	return s
}

func names(cues []Cue) []string {
	var out []string
	for _, c := range cues {
		out = append(out, c.Name)
	}
	return out
}

func TestTriggerCues(t *testing.T) {
	tr := DefaultTrigger()

	answered := func(step int) (funnel.State, funnel.State) {
		prev := stateAt(step)
		next := stateAt(step)
		next.Profile.Answers = []string{"x"}
		return prev, next
	}

	tests := []struct {
		name string
		prev funnel.State
		next funnel.State
		want []string
	}{
		{"landing start", stateAt(0), stateAt(1), []string{"ambient", "intro-voice"}},
		{"presentation", stateAt(4), stateAt(5), []string{"presentation"}},
		{"ghost laugh", stateAt(6), stateAt(7), []string{"ghost-laugh"}},
		{"gate entry", stateAt(8), stateAt(9), []string{"deserve"}},
		{"video intro", stateAt(12), stateAt(13), []string{"video-intro"}},
		{"door", stateAt(15), stateAt(16), []string{"door-opening"}},
		{"decline", stateAt(16), stateAt(18), []string{"read-you"}},
		{"gate failure is silent", stateAt(9), stateAt(18), nil},
		{"plain step", stateAt(1), stateAt(2), nil},
		{"no step change", stateAt(5), stateAt(5), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tr.Cues(tt.prev, tt.next)))
		})
	}

	// Answer cues are keyed by question index, not step.
	prev, next := answered(4) // question 3
	assert.Equal(t, []string{"black-card"}, names(tr.Cues(prev, next)))
	prev, next = answered(12) // question 8
	assert.Equal(t, []string{"activate-now"}, names(tr.Cues(prev, next)))
	prev, next = answered(3)
	assert.Empty(t, tr.Cues(prev, next))
}

func TestCommandPlayerArgs(t *testing.T) {
	p := &CommandPlayer{
		Command:  []string{"mpv", "--no-video", "--volume={volume}"},
		MediaDir: "/srv/media",
	}
	assert.Equal(t,
		[]string{"--no-video", "--volume=70", "/srv/media/media/door-opening.mp3"},
		p.Args(DoorOpening))
	assert.Equal(t,
		[]string{"--no-video", "--volume=80", Presentation.Source},
		p.Args(Presentation))
}

func TestNewCommandPlayerErrors(t *testing.T) {
	_, err := NewCommandPlayer("   ", "")
	assert.Error(t, err)

	_, err = NewCommandPlayer("definitely-not-a-real-player-binary", "")
	assert.Error(t, err)
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	b := BellPlayer{W: &buf}
	ctx := context.Background()

	require.NoError(t, b.Play(ctx, SoundCue(funnel.SoundClick)))
	require.NoError(t, b.Play(ctx, Presentation))
	assert.Zero(t, buf.Len())

	require.NoError(t, b.Play(ctx, SoundCue(funnel.SoundError)))
	assert.Equal(t, "\a", buf.String())
}

func TestAmbientIdempotent(t *testing.T) {
	p := &recordingPlayer{}
	a := NewAmbient(p, zap.NewNop())

	a.Start(AmbientLoop)
	a.Start(AmbientLoop)
	assert.True(t, a.Running())

	require.Eventually(t, func() bool { return len(p.names()) == 1 }, time.Second, 5*time.Millisecond)
	a.Stop()
	a.Stop()
	assert.False(t, a.Running())
	assert.Equal(t, []string{"ambient"}, p.names())
}

func TestDispatcherRoutesCues(t *testing.T) {
	tracks := &recordingPlayer{}
	synth := &recordingPlayer{}
	d := NewDispatcher(DispatcherOptions{Tracks: tracks, Synth: synth})

	d.Observe(stateAt(0), stateAt(1))
	d.Sound(funnel.SoundTransition)
	d.Sound(funnel.SoundNone)

	require.Eventually(t, func() bool {
		return len(tracks.names()) == 2 && len(synth.names()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, d.Ambient().Running())
	assert.ElementsMatch(t, []string{"ambient", "intro-voice"}, tracks.names())
	assert.Equal(t, []string{"transition"}, synth.names())

	d.Close()
	assert.False(t, d.Ambient().Running())

	// Cues after Close are dropped.
	d.Fire(Presentation)
	assert.Len(t, tracks.names(), 2)
}

func TestDispatcherLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tracks := &recordingPlayer{err: errors.New("no audio device")}
	d := NewDispatcher(DispatcherOptions{Tracks: tracks, Logger: zap.New(core)})

	d.Fire(GhostLaugh)
	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	d.Close()

	entry := logs.All()[0]
	assert.Equal(t, "cue playback failed", entry.Message)
	assert.Equal(t, "ghost-laugh", entry.ContextMap()["cue"])
}

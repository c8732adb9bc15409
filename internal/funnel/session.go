package funnel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/funnel/internal/content"
	"github.com/abhisek/funnel/internal/store"
)

// Observer is notified after every committed transition. Observers must
// not block; long work belongs on another goroutine.
type Observer interface {
	Observe(prev, next State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next State)

func (f ObserverFunc) Observe(prev, next State) { f(prev, next) }

// Options configures a new Session.
type Options struct {
	ID      string // generated when empty
	Catalog *content.Catalog
	Rules   Rules
	Events  store.EventRepo // optional analytics log
	Logger  *zap.Logger
}

type timer struct {
	due time.Time
	seq uint64
	ev  Event
}

// Session owns one visitor's state and its pending timers. It is driven
// from a single goroutine and is not safe for concurrent use. Time is
// always passed in, so a test can advance a virtual clock.
type Session struct {
	ID string

	cat       *content.Catalog
	rules     Rules
	events    store.EventRepo
	log       *zap.Logger
	state     State
	timers    []timer
	timerSeq  uint64
	observers []Observer
}

// NewSession creates a session at step 0. A nil catalog means the
// embedded default.
func NewSession(opts Options) (*Session, error) {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = content.Default(); err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
	}
	if err := CheckCatalog(cat); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:     id,
		cat:    cat,
		rules:  opts.Rules,
		events: opts.Events,
		log:    log.With(zap.String("session", id)),
		state:  NewState(),
	}, nil
}

// AddObserver registers o for subsequent transitions.
func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.clone()
}

// Screen returns the definition of the current step.
func (s *Session) Screen() Screen {
	scr, _ := ScreenAt(s.state.Step)
	return scr
}

// Catalog returns the content the session renders.
func (s *Session) Catalog() *content.Catalog {
	return s.cat
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules {
	return s.rules
}

// Start records the session start and notifies observers of step 0.
func (s *Session) Start(ctx context.Context, now time.Time) {
	s.log.Info("session started", zap.Int("step", s.state.Step))
	s.record(ctx, store.KindSessionStart, s.state, s.state, NoSelection, "", now)
	for _, o := range s.observers {
		o.Observe(State{Step: -1}, s.state.clone())
	}
}

// End records the session end and drops pending timers.
func (s *Session) End(ctx context.Context, now time.Time) {
	s.timers = nil
	s.log.Info("session ended",
		zap.Int("step", s.state.Step),
		zap.Int("xp", s.state.Profile.XP),
		zap.Bool("redirected", s.state.Redirected),
	)
	s.record(ctx, store.KindSessionEnd, s.state, s.state, NoSelection, "", now)
}

// Dispatch applies a user event at time now. Schedule effects are queued
// on the session; the remaining effects are returned for the caller to
// carry out. Rejected events leave the state unchanged.
func (s *Session) Dispatch(ctx context.Context, ev Event, now time.Time) ([]Effect, error) {
	if ev.IsTimer() {
		return nil, ErrIgnored
	}
	return s.apply(ctx, ev, now)
}

// RunDue fires every timer due at or before now, in due order. Timers
// scheduled by a firing timer are based on that timer's due time, so the
// result does not depend on how late RunDue is called.
func (s *Session) RunDue(ctx context.Context, now time.Time) []Effect {
	var out []Effect
	for len(s.timers) > 0 && !s.timers[0].due.After(now) {
		t := s.timers[0]
		s.timers = s.timers[1:]

		effects, err := s.apply(ctx, t.ev, t.due)
		if err != nil {
			// A timer outliving its screen is expected.
			s.log.Debug("timer dropped", zap.Stringer("event", t.ev.Kind), zap.Error(err))
			continue
		}
		out = append(out, effects...)
	}
	return out
}

// NextDue returns the due time of the earliest pending timer.
func (s *Session) NextDue() (time.Time, bool) {
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	return s.timers[0].due, true
}

// Pending returns the number of queued timers.
func (s *Session) Pending() int {
	return len(s.timers)
}

func (s *Session) apply(ctx context.Context, ev Event, now time.Time) ([]Effect, error) {
	prev := s.state
	next, effects, err := Apply(s.cat, prev, ev, s.rules)
	if err != nil {
		return nil, err
	}
	s.state = next

	var out []Effect
	for _, e := range effects {
		if e.Kind == EffectSchedule {
			s.schedule(now.Add(e.After), e.Event)
			continue
		}
		out = append(out, e)
	}

	s.log.Debug("transition",
		zap.Stringer("event", ev.Kind),
		zap.Int("from", prev.Step),
		zap.Int("to", next.Step),
		zap.Stringer("phase", next.Phase),
		zap.Int("xp", next.Profile.XP),
	)
	s.recordTransition(ctx, prev, next, ev, now)

	if prev.Step != next.Step || prev.Phase != next.Phase ||
		prev.AnalysisProgress != next.AnalysisProgress || prev.BonusVisible != next.BonusVisible {
		for _, o := range s.observers {
			o.Observe(prev.clone(), next.clone())
		}
	}
	return out, nil
}

// schedule inserts a timer after every timer due at the same time or earlier.
func (s *Session) schedule(due time.Time, ev Event) {
	s.timerSeq++
	t := timer{due: due, seq: s.timerSeq, ev: ev}
	i, _ := slices.BinarySearchFunc(s.timers, t, func(a, b timer) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	s.timers = slices.Insert(s.timers, i, t)
}

func (s *Session) recordTransition(ctx context.Context, prev, next State, ev Event, now time.Time) {
	if s.events == nil {
		return
	}
	scr, _ := ScreenAt(prev.Step)

	if n := len(next.Profile.Answers); n > len(prev.Profile.Answers) {
		s.record(ctx, store.KindAnswer, prev, next, ev.Option, next.Profile.Answers[n-1], now)
	}
	if scr.Kind == KindGate && ev.Kind == EventChoose {
		kind := store.KindGateFail
		if ev.Option == scr.PassOption {
			kind = store.KindGatePass
		}
		s.record(ctx, kind, prev, next, ev.Option, "", now)
	}
	if prev.Profile.PsychProfile == "" && next.Profile.PsychProfile != "" {
		s.record(ctx, store.KindProfile, prev, next, NoSelection, next.Profile.PsychProfile, now)
	}
	if prev.Profile.Classification == "" && next.Profile.Classification != "" {
		s.record(ctx, store.KindComplete, prev, next, NoSelection, next.Profile.Classification, now)
	}
	if scr.Kind == KindOffer && ev.Kind == EventReject {
		s.record(ctx, store.KindDecline, prev, next, NoSelection, "", now)
	}
	switch ev.Kind {
	case EventBonusAccept:
		s.record(ctx, store.KindBonusAccept, prev, next, NoSelection, "", now)
	case EventBonusDecline:
		s.record(ctx, store.KindBonusDecline, prev, next, NoSelection, "", now)
	}
	if prev.Step != next.Step {
		s.record(ctx, store.KindEnter, prev, next, NoSelection, "", now)
	}
	if !prev.Redirected && next.Redirected {
		s.record(ctx, store.KindRedirect, prev, next, NoSelection, s.rules.CheckoutURL, now)
	}
}

// record appends one analytics event. The log is best-effort and a
// failure never affects the funnel.
func (s *Session) record(ctx context.Context, kind string, prev, next State, option int, detail string, now time.Time) {
	if s.events == nil {
		return
	}
	err := s.events.AppendFunnelEvent(ctx, store.FunnelEventData{
		SessionID: s.ID,
		Kind:      kind,
		Step:      prev.Step,
		ToStep:    next.Step,
		Option:    option,
		XP:        next.Profile.XP,
		Level:     next.Profile.Level,
		Detail:    detail,
		At:        now,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("record funnel event failed", zap.String("kind", kind), zap.Error(err))
	}
}

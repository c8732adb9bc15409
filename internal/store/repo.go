package store

import (
	"context"
	"time"
)

// Funnel event kinds.
const (
	KindSessionStart = "session_start"
	KindSessionEnd   = "session_end"
	KindEnter        = "enter"
	KindAnswer       = "answer"
	KindGatePass     = "gate_pass"
	KindGateFail     = "gate_fail"
	KindProfile      = "profile"
	KindComplete     = "complete"
	KindDecline      = "decline"
	KindRedirect     = "redirect"
	KindBonusAccept  = "bonus_accept"
	KindBonusDecline = "bonus_decline"
)

// FunnelEventData captures one recorded funnel transition.
type FunnelEventData struct {
	SessionID string
	Kind      string
	Step      int // step the event happened on
	ToStep    int // step after the event
	Option    int // chosen option index, -1 when not a choice
	XP        int
	Level     int
	Detail    string // answer text, profile label or URL
	At        time.Time
}

// FunnelEvent is a stored FunnelEventData with its ordering metadata.
type FunnelEvent struct {
	ID       int
	Sequence int64
	FunnelEventData
}

// FunnelStats aggregates the event log into conversion numbers.
type FunnelStats struct {
	Sessions      int
	Reached       map[int]int // distinct sessions that entered each step
	Answers       int
	GatePassed    int
	GateFailed    int
	Completed     int
	Declined      int
	Redirects     int
	SecondChances int // redirects taken from a rejection screen
	BonusAccepted int
	BonusDeclined int
}

// QueryOpts configures event queries with pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// EventRepo provides append and query access to funnel events.
type EventRepo interface {
	// AppendFunnelEvent records a funnel event.
	AppendFunnelEvent(ctx context.Context, data FunnelEventData) error

	// SessionEvents returns a session's events in sequence order.
	SessionEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]FunnelEvent, error)

	// Stats aggregates all recorded sessions.
	Stats(ctx context.Context) (*FunnelStats, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}

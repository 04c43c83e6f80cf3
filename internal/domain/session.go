package domain

import "time"

type SessionPhase string

const (
	PhaseBrowsing             SessionPhase = "BROWSING"
	PhaseAwaitingConfirmation SessionPhase = "AWAITING_CONFIRMATION"
	PhaseClosed               SessionPhase = "CLOSED"
)

// TradeIntent is the pending trade a session carries while awaiting
// confirmation.
type TradeIntent struct {
	OfferIndex int
	Lots       int64
	Direction  TradeDirection
}

// TradeSession is the interaction window between a participant and a
// shop. ShopID is a weak reference: it is re-resolved through the
// registry on every operation and never keeps a removed shop alive.
type TradeSession struct {
	Participant string
	ShopID      string
	Phase       SessionPhase
	Intent      *TradeIntent
	OpenedAt    time.Time
}

func (s *TradeSession) Closed() bool {
	return s.Phase == PhaseClosed
}

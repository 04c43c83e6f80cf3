package session

import (
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/registry"
	"github.com/questforge/shopkeeper-service/internal/usecase/trade"
)

type SessionUsecase interface {
	OpenShop(participant, shopID string) error
	DeclareIntent(participant string, offerIndex int, lots int64, direction domain.TradeDirection) error
	Confirm(participant string) (*domain.TradeReceipt, error)
	CancelIntent(participant string) error
	CloseView(participant string) error
	Disconnect(participant string)
	SessionOf(participant string) (*domain.TradeSession, bool)
}

// DefaultSessionUsecase drives the per-participant trade session state
// machine. Sessions hold only the shop id; the shop itself is
// re-resolved through the registry on every operation. All methods must
// run on the tick loop.
type DefaultSessionUsecase struct {
	Registry *registry.Registry
	Trade    trade.TradeUsecase
	View     domain.ViewPort

	sessions map[string]*domain.TradeSession
}

func NewDefaultSessionUsecase(
	shopRegistry *registry.Registry,
	tradeUsecase trade.TradeUsecase,
	view domain.ViewPort) *DefaultSessionUsecase {

	uc := &DefaultSessionUsecase{
		Registry: shopRegistry,
		Trade:    tradeUsecase,
		View:     view,
		sessions: make(map[string]*domain.TradeSession),
	}
	shopRegistry.OnRemove(uc.closeForShop)
	return uc
}

// OpenShop starts a browsing session, replacing any previous session
// the participant had.
func (uc *DefaultSessionUsecase) OpenShop(participant, shopID string) error {
	shop, ok := uc.Registry.FindByID(shopID)
	if !ok {
		return domain.ErrShopNotFound
	}

	uc.sessions[participant] = &domain.TradeSession{
		Participant: participant,
		ShopID:      shopID,
		Phase:       domain.PhaseBrowsing,
		OpenedAt:    time.Now(),
	}
	uc.View.RenderCatalog(participant, shop)
	return nil
}

// DeclareIntent moves the session to AwaitingConfirmation. A session
// already awaiting confirmation holds its one in-flight trade slot, so
// a second intent is rejected.
func (uc *DefaultSessionUsecase) DeclareIntent(participant string, offerIndex int, lots int64, direction domain.TradeDirection) error {
	sess, ok := uc.sessions[participant]
	if !ok || sess.Closed() {
		return domain.ErrSessionClosed
	}
	if sess.Phase == domain.PhaseAwaitingConfirmation {
		return domain.ErrTradeInFlight
	}
	if _, ok := uc.Registry.FindByID(sess.ShopID); !ok {
		uc.closeSession(participant, sess)
		return domain.ErrShopNotFound
	}

	sess.Intent = &domain.TradeIntent{
		OfferIndex: offerIndex,
		Lots:       lots,
		Direction:  direction,
	}
	sess.Phase = domain.PhaseAwaitingConfirmation
	return nil
}

// Confirm executes the pending intent. Success or failure, the session
// returns to Browsing; a session closed by shop removal rejects the
// confirm with ShopNotFound.
func (uc *DefaultSessionUsecase) Confirm(participant string) (*domain.TradeReceipt, error) {
	sess, ok := uc.sessions[participant]
	if !ok {
		return nil, domain.ErrSessionClosed
	}
	if sess.Closed() {
		if _, ok := uc.Registry.FindByID(sess.ShopID); !ok {
			return nil, domain.ErrShopNotFound
		}
		return nil, domain.ErrSessionClosed
	}
	if sess.Phase != domain.PhaseAwaitingConfirmation || sess.Intent == nil {
		return nil, domain.ErrNoPendingTrade
	}

	intent := sess.Intent
	sess.Intent = nil
	sess.Phase = domain.PhaseBrowsing

	return uc.Trade.Execute(participant, sess.ShopID, intent.OfferIndex, intent.Lots, intent.Direction)
}

// CancelIntent returns an awaiting session to Browsing with no mutation
// applied.
func (uc *DefaultSessionUsecase) CancelIntent(participant string) error {
	sess, ok := uc.sessions[participant]
	if !ok || sess.Closed() {
		return domain.ErrSessionClosed
	}
	sess.Intent = nil
	sess.Phase = domain.PhaseBrowsing
	return nil
}

// CloseView ends the session when the participant closes the catalog
// interface.
func (uc *DefaultSessionUsecase) CloseView(participant string) error {
	sess, ok := uc.sessions[participant]
	if !ok {
		return domain.ErrSessionClosed
	}
	uc.closeSession(participant, sess)
	uc.View.CloseView(participant)
	return nil
}

// Disconnect ends the session without a view round-trip; the interface
// is already gone with the connection.
func (uc *DefaultSessionUsecase) Disconnect(participant string) {
	if sess, ok := uc.sessions[participant]; ok {
		uc.closeSession(participant, sess)
	}
}

func (uc *DefaultSessionUsecase) SessionOf(participant string) (*domain.TradeSession, bool) {
	sess, ok := uc.sessions[participant]
	return sess, ok
}

func (uc *DefaultSessionUsecase) closeSession(participant string, sess *domain.TradeSession) {
	sess.Phase = domain.PhaseClosed
	sess.Intent = nil
	delete(uc.sessions, participant)
}

// closeForShop transitions every session referencing a removed shop to
// Closed. The sessions stay indexed so a pending confirm surfaces
// ShopNotFound instead of silently vanishing.
func (uc *DefaultSessionUsecase) closeForShop(shopID string) {
	for participant, sess := range uc.sessions {
		if sess.ShopID != shopID {
			continue
		}
		sess.Phase = domain.PhaseClosed
		sess.Intent = nil
		uc.View.CloseView(participant)
	}
}

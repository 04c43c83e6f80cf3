package host

import (
	"context"
	"log/slog"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/registry"
	"github.com/questforge/shopkeeper-service/internal/tickloop"
	"github.com/questforge/shopkeeper-service/internal/usecase/catalog"
	"github.com/questforge/shopkeeper-service/internal/usecase/session"
	"github.com/questforge/shopkeeper-service/internal/usecase/shop"
)

// Handler is the host-engine boundary: it maps interaction events onto
// session, shop and catalog operations, funnelling every one of them
// through the tick loop so mutations stay single-threaded. It owns no
// business logic.
type Handler struct {
	Loop     *tickloop.Loop
	Registry *registry.Registry
	Sessions session.SessionUsecase
	Shops    shop.ShopUsecase
	Catalog  catalog.CatalogUsecase
}

func NewHandler(
	loop *tickloop.Loop,
	shopRegistry *registry.Registry,
	sessions session.SessionUsecase,
	shops shop.ShopUsecase,
	catalogUsecase catalog.CatalogUsecase) *Handler {

	return &Handler{
		Loop:     loop,
		Registry: shopRegistry,
		Sessions: sessions,
		Shops:    shops,
		Catalog:  catalogUsecase,
	}
}

// OnOpenShop resolves the clicked location to a shop and opens a
// browsing session.
func (h *Handler) OnOpenShop(ctx context.Context, event OpenShopEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		shop, ok := h.Registry.FindByLocation(event.Location)
		if !ok {
			opErr = domain.ErrShopNotFound
			return
		}
		opErr = h.Sessions.OpenShop(event.Participant, shop.ID)
	})
	if err != nil {
		return err
	}
	return opErr
}

func (h *Handler) OnTradeIntent(ctx context.Context, event TradeIntentEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		opErr = h.Sessions.DeclareIntent(event.Participant, event.OfferIndex, event.Lots, event.Direction)
	})
	if err != nil {
		return err
	}
	return opErr
}

// OnConfirm executes the pending trade and returns the receipt. All
// trade-path errors surface here as synchronous results, never
// silently.
func (h *Handler) OnConfirm(ctx context.Context, event ConfirmEvent) (*domain.TradeReceipt, error) {
	var (
		receipt *domain.TradeReceipt
		opErr   error
	)
	err := h.Loop.Do(ctx, func() {
		receipt, opErr = h.Sessions.Confirm(event.Participant)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		slog.Info("trade rejected",
			"participant", event.Participant, "reason", opErr.Error())
		return nil, opErr
	}
	return receipt, nil
}

func (h *Handler) OnCancel(ctx context.Context, event CancelEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		opErr = h.Sessions.CancelIntent(event.Participant)
	})
	if err != nil {
		return err
	}
	return opErr
}

func (h *Handler) OnCloseView(ctx context.Context, event CloseViewEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		opErr = h.Sessions.CloseView(event.Participant)
	})
	if err != nil {
		return err
	}
	return opErr
}

func (h *Handler) OnDisconnect(ctx context.Context, event DisconnectEvent) error {
	return h.Loop.Do(ctx, func() {
		h.Sessions.Disconnect(event.Participant)
	})
}

func (h *Handler) OnCreateShop(ctx context.Context, event CreateShopEvent) (*domain.Shop, error) {
	var (
		created *domain.Shop
		opErr   error
	)
	err := h.Loop.Do(ctx, func() {
		created, opErr = h.Shops.CreateShop(event.Owner, event.Name, event.Location, event.Offers)
	})
	if err != nil {
		return nil, err
	}
	return created, opErr
}

func (h *Handler) OnRemoveShop(ctx context.Context, event RemoveShopEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		shop, ok := h.Registry.FindByID(event.ShopID)
		if !ok {
			return // removal is idempotent
		}
		if event.Actor != shop.Owner && event.Actor != domain.SystemOwner {
			opErr = domain.ErrNotOwner
			return
		}
		h.Shops.RemoveShop(event.ShopID)
	})
	if err != nil {
		return err
	}
	return opErr
}

func (h *Handler) OnEditOffer(ctx context.Context, event EditOfferEvent) error {
	var opErr error
	err := h.Loop.Do(ctx, func() {
		switch event.Action {
		case EditAddOffer:
			opErr = h.Catalog.AddOffer(event.Actor, event.ShopID, event.Offer)
		case EditRemoveOffer:
			opErr = h.Catalog.RemoveOffer(event.Actor, event.ShopID, event.OfferIndex)
		case EditReprice:
			opErr = h.Catalog.Reprice(event.Actor, event.ShopID, event.OfferIndex, event.Price)
		case EditRestock:
			opErr = h.Catalog.AdjustStock(event.Actor, event.ShopID, event.OfferIndex, event.Delta)
		default:
			opErr = domain.ErrOfferNotFound
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

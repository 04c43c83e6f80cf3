package host

import "github.com/questforge/shopkeeper-service/internal/domain"

// Interaction events delivered by the host engine. The core consumes
// these and emits nothing back except view render/close requests
// through the ViewPort.

type OpenShopEvent struct {
	Participant string
	Location    domain.Location
}

type TradeIntentEvent struct {
	Participant string
	OfferIndex  int
	Lots        int64
	Direction   domain.TradeDirection
}

type ConfirmEvent struct {
	Participant string
}

type CancelEvent struct {
	Participant string
}

type CloseViewEvent struct {
	Participant string
}

type DisconnectEvent struct {
	Participant string
}

// Editor events: shop placement and catalog edits, driven by the host
// engine's editor interface.

type CreateShopEvent struct {
	Owner    string
	Name     string
	Location domain.Location
	Offers   []domain.Offer
}

type RemoveShopEvent struct {
	Actor  string
	ShopID string
}

type EditOfferAction string

const (
	EditAddOffer    EditOfferAction = "ADD"
	EditRemoveOffer EditOfferAction = "REMOVE"
	EditReprice     EditOfferAction = "REPRICE"
	EditRestock     EditOfferAction = "RESTOCK"
)

type EditOfferEvent struct {
	Actor      string
	ShopID     string
	Action     EditOfferAction
	OfferIndex int
	Offer      domain.Offer // ADD only
	Price      int64        // REPRICE only
	Delta      int64        // RESTOCK only
}

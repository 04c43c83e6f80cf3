package catalog

import (
	"fmt"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/registry"
)

type CatalogUsecase interface {
	AddOffer(actor, shopID string, offer domain.Offer) error
	RemoveOffer(actor, shopID string, offerIndex int) error
	Reprice(actor, shopID string, offerIndex int, price int64) error
	AdjustStock(actor, shopID string, offerIndex int, delta int64) error
	Offers(shopID string) ([]domain.Offer, error)
}

// DefaultCatalogUsecase applies owner-only catalog mutations. The
// system owner has delegated authority over every shop. All methods
// must run on the tick loop.
type DefaultCatalogUsecase struct {
	Registry *registry.Registry
}

func NewDefaultCatalogUsecase(shopRegistry *registry.Registry) *DefaultCatalogUsecase {
	return &DefaultCatalogUsecase{Registry: shopRegistry}
}

func (uc *DefaultCatalogUsecase) AddOffer(actor, shopID string, offer domain.Offer) error {
	shop, err := uc.authorize(actor, shopID)
	if err != nil {
		return err
	}
	if err := uc.Registry.ValidateOffer(&offer); err != nil {
		return fmt.Errorf("invalid offer: %w", err)
	}
	shop.Catalog = append(shop.Catalog, offer)
	uc.Registry.MarkDirty()
	return nil
}

func (uc *DefaultCatalogUsecase) RemoveOffer(actor, shopID string, offerIndex int) error {
	shop, err := uc.authorize(actor, shopID)
	if err != nil {
		return err
	}
	if _, err := shop.OfferAt(offerIndex); err != nil {
		return err
	}
	shop.Catalog = append(shop.Catalog[:offerIndex], shop.Catalog[offerIndex+1:]...)
	uc.Registry.MarkDirty()
	return nil
}

func (uc *DefaultCatalogUsecase) Reprice(actor, shopID string, offerIndex int, price int64) error {
	shop, err := uc.authorize(actor, shopID)
	if err != nil {
		return err
	}
	offer, err := shop.OfferAt(offerIndex)
	if err != nil {
		return err
	}
	if price < 0 {
		return domain.ErrInvalidPrice
	}
	offer.Price = price
	uc.Registry.MarkDirty()
	return nil
}

// AdjustStock restocks or drains an offer outside of trades (owner
// loading items into the shop).
func (uc *DefaultCatalogUsecase) AdjustStock(actor, shopID string, offerIndex int, delta int64) error {
	shop, err := uc.authorize(actor, shopID)
	if err != nil {
		return err
	}
	offer, err := shop.OfferAt(offerIndex)
	if err != nil {
		return err
	}
	if err := offer.AdjustStock(delta); err != nil {
		return err
	}
	uc.Registry.MarkDirty()
	return nil
}

// Offers returns the catalog in declaration order, copied so callers
// cannot mutate live state.
func (uc *DefaultCatalogUsecase) Offers(shopID string) ([]domain.Offer, error) {
	shop, ok := uc.Registry.FindByID(shopID)
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	return append([]domain.Offer(nil), shop.Catalog...), nil
}

func (uc *DefaultCatalogUsecase) authorize(actor, shopID string) (*domain.Shop, error) {
	shop, ok := uc.Registry.FindByID(shopID)
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	if actor != shop.Owner && actor != domain.SystemOwner {
		return nil, domain.ErrNotOwner
	}
	return shop, nil
}

package shop

import (
	"log/slog"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/kafka"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/metrics"
	"github.com/questforge/shopkeeper-service/internal/registry"
)

type ShopUsecase interface {
	CreateShop(owner, name string, location domain.Location, offers []domain.Offer) (*domain.Shop, error)
	RemoveShop(shopID string) bool
	Suspend(shopID string) error
	Resume(shopID string) error
}

// EventPublisher is the slice of the broker publisher shop lifecycle
// needs.
type EventPublisher interface {
	PublishShop(event kafka.ShopEvent) error
}

// DefaultShopUsecase wraps the registry's lifecycle authority with
// lifecycle events and metrics. All methods must run on the tick loop.
type DefaultShopUsecase struct {
	Registry  *registry.Registry
	Publisher EventPublisher
	Metrics   *metrics.TradeMetrics
}

func NewDefaultShopUsecase(
	shopRegistry *registry.Registry,
	eventPublisher EventPublisher,
	tradeMetrics *metrics.TradeMetrics) *DefaultShopUsecase {

	return &DefaultShopUsecase{
		Registry:  shopRegistry,
		Publisher: eventPublisher,
		Metrics:   tradeMetrics,
	}
}

func (uc *DefaultShopUsecase) CreateShop(owner, name string, location domain.Location, offers []domain.Offer) (*domain.Shop, error) {
	shop, err := uc.Registry.CreateShop(owner, name, location, offers)
	if err != nil {
		return nil, err
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordShopCreated()
	}
	uc.publish(kafka.ShopEvent{
		Type:   kafka.ShopCreated,
		ShopID: shop.ID,
		Owner:  shop.Owner,
		Name:   shop.Name,
		World:  shop.Location.World,
		X:      shop.Location.X,
		Y:      shop.Location.Y,
		Z:      shop.Location.Z,
	})
	return shop, nil
}

func (uc *DefaultShopUsecase) RemoveShop(shopID string) bool {
	shop, ok := uc.Registry.FindByID(shopID)
	if !ok {
		return false
	}
	removed := uc.Registry.RemoveShop(shopID)
	if removed {
		if uc.Metrics != nil {
			uc.Metrics.RecordShopRemoved()
		}
		uc.publish(kafka.ShopEvent{
			Type:   kafka.ShopRemoved,
			ShopID: shop.ID,
			Owner:  shop.Owner,
			Name:   shop.Name,
			World:  shop.Location.World,
			X:      shop.Location.X,
			Y:      shop.Location.Y,
			Z:      shop.Location.Z,
		})
	}
	return removed
}

func (uc *DefaultShopUsecase) Suspend(shopID string) error {
	if err := uc.Registry.Suspend(shopID); err != nil {
		return err
	}
	if shop, ok := uc.Registry.FindByID(shopID); ok {
		uc.publish(kafka.ShopEvent{Type: kafka.ShopSuspended, ShopID: shop.ID, Owner: shop.Owner, Name: shop.Name})
	}
	return nil
}

func (uc *DefaultShopUsecase) Resume(shopID string) error {
	if err := uc.Registry.Resume(shopID); err != nil {
		return err
	}
	if shop, ok := uc.Registry.FindByID(shopID); ok {
		uc.publish(kafka.ShopEvent{Type: kafka.ShopResumed, ShopID: shop.ID, Owner: shop.Owner, Name: shop.Name})
	}
	return nil
}

func (uc *DefaultShopUsecase) publish(event kafka.ShopEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		if err := uc.Publisher.PublishShop(event); err != nil {
			slog.Error("failed to publish shop event", "shop_id", event.ShopID, "type", string(event.Type), "error", err.Error())
		}
	}()
}

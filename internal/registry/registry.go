package registry

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/questforge/shopkeeper-service/internal/domain"
)

type Limits struct {
	MaxShopsPerOwner int
	MaxOfferStock    int64
}

// Registry is the process-wide authoritative index of shops, keyed by
// id and by location. It is the sole lifecycle authority: shops are
// created and removed only through it. All mutating methods must run on
// the tick loop.
type Registry struct {
	shops       map[string]*domain.Shop
	byLocation  map[domain.Location]string
	order       []string // shop ids in creation order
	limits      Limits
	dirty       bool
	removeHooks []func(shopID string)
	logger      *slog.Logger
}

func New(limits Limits, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		shops:      make(map[string]*domain.Shop),
		byLocation: make(map[domain.Location]string),
		limits:     limits,
		logger:     logger,
	}
}

// OnRemove registers a hook invoked whenever a shop is removed, before
// its location is freed. Used to close sessions referencing the shop.
func (r *Registry) OnRemove(hook func(shopID string)) {
	r.removeHooks = append(r.removeHooks, hook)
}

func (r *Registry) CreateShop(owner, name string, location domain.Location, offers []domain.Offer) (*domain.Shop, error) {
	// Suspended shops keep their claim too: a second shop at the same
	// location would collide the moment the first one resumes, and would
	// poison the snapshot with a duplicate location.
	if _, ok := r.byLocation[location]; ok {
		return nil, domain.ErrLocationOccupied
	}
	if owner != domain.SystemOwner && r.countByOwner(owner) >= r.limits.MaxShopsPerOwner {
		return nil, domain.ErrOwnerLimitExceeded
	}
	for i := range offers {
		if err := validateOffer(&offers[i], r.limits.MaxOfferStock); err != nil {
			return nil, fmt.Errorf("offer %d: %w", i, err)
		}
	}

	now := time.Now()
	shop := &domain.Shop{
		ID:        uuid.New().String(),
		Name:      name,
		Owner:     owner,
		Location:  location,
		State:     domain.StateActive,
		Catalog:   append([]domain.Offer(nil), offers...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.shops[shop.ID] = shop
	r.byLocation[location] = shop.ID
	r.order = append(r.order, shop.ID)
	r.MarkDirty()
	return shop, nil
}

// RemoveShop detaches the shop, closes sessions referencing it and
// frees its location. Removing an absent shop is a no-op.
func (r *Registry) RemoveShop(shopID string) bool {
	shop, ok := r.shops[shopID]
	if !ok {
		return false
	}
	for _, hook := range r.removeHooks {
		hook(shopID)
	}
	delete(r.shops, shopID)
	if r.byLocation[shop.Location] == shopID {
		delete(r.byLocation, shop.Location)
	}
	for i, id := range r.order {
		if id == shopID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.MarkDirty()
	return true
}

func (r *Registry) FindByID(shopID string) (*domain.Shop, bool) {
	shop, ok := r.shops[shopID]
	return shop, ok
}

func (r *Registry) FindByLocation(location domain.Location) (*domain.Shop, bool) {
	id, ok := r.byLocation[location]
	if !ok {
		return nil, false
	}
	return r.FindByID(id)
}

// ListByOwner yields the owner's shops in creation order. The sequence
// is restartable: each range re-walks the index.
func (r *Registry) ListByOwner(owner string) iter.Seq[*domain.Shop] {
	return func(yield func(*domain.Shop) bool) {
		for _, id := range r.order {
			shop, ok := r.shops[id]
			if !ok || shop.Owner != owner {
				continue
			}
			if !yield(shop) {
				return
			}
		}
	}
}

func (r *Registry) Suspend(shopID string) error {
	shop, ok := r.shops[shopID]
	if !ok {
		return domain.ErrShopNotFound
	}
	if shop.State != domain.StateSuspended {
		shop.State = domain.StateSuspended
		shop.UpdatedAt = time.Now()
		r.MarkDirty()
	}
	return nil
}

func (r *Registry) Resume(shopID string) error {
	shop, ok := r.shops[shopID]
	if !ok {
		return domain.ErrShopNotFound
	}
	if shop.State != domain.StateActive {
		shop.State = domain.StateActive
		shop.UpdatedAt = time.Now()
		r.MarkDirty()
	}
	return nil
}

func (r *Registry) Count() int {
	return len(r.shops)
}

func (r *Registry) MarkDirty() {
	r.dirty = true
}

func (r *Registry) Dirty() bool {
	return r.dirty
}

func (r *Registry) ClearDirty() {
	r.dirty = false
}

// ValidateOffer normalizes an offer against the configured stock
// limits. Used for offers added after shop creation.
func (r *Registry) ValidateOffer(offer *domain.Offer) error {
	return validateOffer(offer, r.limits.MaxOfferStock)
}

func (r *Registry) countByOwner(owner string) int {
	n := 0
	for _, shop := range r.shops {
		if shop.Owner == owner {
			n++
		}
	}
	return n
}

func validateOffer(offer *domain.Offer, maxStock int64) error {
	if offer.LotSize <= 0 {
		return domain.ErrInvalidLotCount
	}
	if offer.Price < 0 {
		return domain.ErrInvalidPrice
	}
	if !offer.Stock.Unbounded {
		if offer.Stock.Capacity <= 0 || offer.Stock.Capacity > maxStock {
			offer.Stock.Capacity = maxStock
		}
		if offer.Stock.Value < 0 {
			return domain.ErrInsufficientStock
		}
		if offer.Stock.Value > offer.Stock.Capacity {
			offer.Stock.Value = offer.Stock.Capacity
		}
	}
	return nil
}

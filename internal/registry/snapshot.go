package registry

import (
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
)

// Snapshot deep-copies the registry into plain records, in creation
// order. Call it on the tick loop; the result can then cross the
// persistence boundary without tearing.
func (r *Registry) Snapshot() []domain.ShopRecord {
	records := make([]domain.ShopRecord, 0, len(r.order))
	for _, id := range r.order {
		shop, ok := r.shops[id]
		if !ok {
			continue
		}
		records = append(records, recordFromShop(shop))
	}
	return records
}

// Restore rebuilds the registry from stored records. A record whose
// location is already claimed violates the location-uniqueness
// invariant: it is skipped and logged as excluded, the rest still load.
// Returns the number of excluded records.
func (r *Registry) Restore(records []domain.ShopRecord) int {
	r.shops = make(map[string]*domain.Shop, len(records))
	r.byLocation = make(map[domain.Location]string, len(records))
	r.order = r.order[:0]

	excluded := 0
	for _, record := range records {
		if err := validateRecord(&record); err != nil {
			r.logger.Error("excluding corrupt shop record",
				"shop_id", record.ID, "error", err.Error())
			excluded++
			continue
		}
		if _, taken := r.byLocation[record.Location]; taken {
			r.logger.Error("excluding shop record with duplicate location",
				"shop_id", record.ID,
				"world", record.Location.World,
				"x", record.Location.X, "y", record.Location.Y, "z", record.Location.Z)
			excluded++
			continue
		}
		shop := shopFromRecord(&record)
		r.shops[shop.ID] = shop
		r.byLocation[shop.Location] = shop.ID
		r.order = append(r.order, shop.ID)
	}
	r.dirty = false
	return excluded
}

func validateRecord(record *domain.ShopRecord) error {
	if record.ID == "" {
		return domain.ErrCorruptRecord
	}
	for i := range record.Offers {
		offer := &record.Offers[i]
		if offer.LotSize <= 0 || offer.Price < 0 {
			return domain.ErrCorruptRecord
		}
		if !offer.Unbounded && offer.Stock < 0 {
			return domain.ErrCorruptRecord
		}
	}
	return nil
}

func recordFromShop(shop *domain.Shop) domain.ShopRecord {
	offers := make([]domain.OfferRecord, len(shop.Catalog))
	for i, offer := range shop.Catalog {
		offers[i] = domain.OfferRecord{
			Kind:      offer.Kind,
			ItemKind:  offer.Item.Kind,
			ItemAttrs: offer.Item.Attrs,
			LotSize:   offer.LotSize,
			Price:     offer.Price,
			Stock:     offer.Stock.Value,
			Unbounded: offer.Stock.Unbounded,
			Capacity:  offer.Stock.Capacity,
		}
	}
	return domain.ShopRecord{
		ID:        shop.ID,
		Name:      shop.Name,
		Owner:     shop.Owner,
		Location:  shop.Location,
		State:     shop.State,
		Offers:    offers,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}

func shopFromRecord(record *domain.ShopRecord) *domain.Shop {
	catalog := make([]domain.Offer, len(record.Offers))
	for i, offer := range record.Offers {
		catalog[i] = domain.Offer{
			Kind:    offer.Kind,
			Item:    domain.ItemSpec{Kind: offer.ItemKind, Attrs: offer.ItemAttrs},
			LotSize: offer.LotSize,
			Price:   offer.Price,
			Stock: domain.Stock{
				Value:     offer.Stock,
				Capacity:  offer.Capacity,
				Unbounded: offer.Unbounded,
			},
		}
	}
	state := record.State
	if state != domain.StateActive && state != domain.StateSuspended {
		state = domain.StateSuspended
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &domain.Shop{
		ID:        record.ID,
		Name:      record.Name,
		Owner:     record.Owner,
		Location:  record.Location,
		State:     state,
		Catalog:   catalog,
		CreatedAt: createdAt,
		UpdatedAt: record.UpdatedAt,
	}
}

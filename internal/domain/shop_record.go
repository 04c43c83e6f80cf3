package domain

import "time"

// ShopRecord is the persistence contract for a shop. Snapshot and
// restore exchange plain records so the store never touches live
// registry state.
type ShopRecord struct {
	ID        string
	Name      string
	Owner     string
	Location  Location
	State     ShopState
	Offers    []OfferRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OfferRecord struct {
	Kind      TradeKind
	ItemKind  string
	ItemAttrs string
	LotSize   int64
	Price     int64
	Stock     int64
	Unbounded bool
	Capacity  int64
}

type ShopRecordRepository interface {
	// ReplaceAll atomically replaces the stored snapshot.
	ReplaceAll(records []ShopRecord) error
	// LoadAll returns all stored records in creation order.
	LoadAll() ([]ShopRecord, error)
}

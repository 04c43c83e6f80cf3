package domain

import "time"

type ShopState string

const (
	StateActive    ShopState = "ACTIVE"
	StateSuspended ShopState = "SUSPENDED"
)

// SystemOwner marks admin shops: unlimited stock, infinite funds,
// exempt from the per-owner shop cap.
const SystemOwner = "@system"

type Location struct {
	World string
	X     int
	Y     int
	Z     int
}

type Shop struct {
	ID        string
	Name      string
	Owner     string
	Location  Location
	State     ShopState
	Catalog   []Offer
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Shop) IsAdmin() bool {
	return s.Owner == SystemOwner
}

func (s *Shop) IsActive() bool {
	return s.State == StateActive
}

// OfferAt returns the offer at the given catalog position.
func (s *Shop) OfferAt(index int) (*Offer, error) {
	if index < 0 || index >= len(s.Catalog) {
		return nil, ErrOfferNotFound
	}
	return &s.Catalog[index], nil
}

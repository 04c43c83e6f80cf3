package domain

type TradeKind string

const (
	KindSell          TradeKind = "SELL"
	KindBuy           TradeKind = "BUY"
	KindBiDirectional TradeKind = "BIDIRECTIONAL"
)

// TradeDirection is the side a participant takes against a
// bi-directional offer. For plain Sell/Buy offers it must match the kind.
type TradeDirection string

const (
	DirectionBuyFromShop TradeDirection = "BUY_FROM_SHOP"
	DirectionSellToShop  TradeDirection = "SELL_TO_SHOP"
)

// ItemSpec identifies a tradeable item. Attrs carries the serialized
// item attributes (durability, enchantments) and is part of equality.
type ItemSpec struct {
	Kind  string
	Attrs string
}

// Stock is a bounded counter with an unbounded mode for admin shops.
// Value and Capacity are ignored while unbounded.
type Stock struct {
	Value     int64
	Capacity  int64
	Unbounded bool
}

func UnboundedStock() Stock {
	return Stock{Unbounded: true}
}

func BoundedStock(value, capacity int64) Stock {
	return Stock{Value: value, Capacity: capacity}
}

// Covers reports whether the stock can supply the given quantity.
func (s Stock) Covers(quantity int64) bool {
	return s.Unbounded || s.Value >= quantity
}

// CanReceive reports whether the stock can absorb the given quantity
// without exceeding capacity.
func (s Stock) CanReceive(quantity int64) bool {
	return s.Unbounded || s.Value+quantity <= s.Capacity
}

type Offer struct {
	Kind    TradeKind
	Item    ItemSpec
	LotSize int64
	Price   int64
	Stock   Stock
}

// AdjustStock applies delta to a bounded stock counter. Unbounded
// offers accept any delta as a no-op.
func (o *Offer) AdjustStock(delta int64) error {
	if o.Stock.Unbounded {
		return nil
	}
	next := o.Stock.Value + delta
	if next < 0 {
		return ErrInsufficientStock
	}
	if next > o.Stock.Capacity {
		return ErrStockCapacityExceeded
	}
	o.Stock.Value = next
	return nil
}

// Executable reports whether the offer can serve the direction at all,
// regardless of quantities.
func (o *Offer) Executable(direction TradeDirection) bool {
	switch o.Kind {
	case KindSell:
		return direction == DirectionBuyFromShop
	case KindBuy:
		return direction == DirectionSellToShop
	case KindBiDirectional:
		return true
	}
	return false
}

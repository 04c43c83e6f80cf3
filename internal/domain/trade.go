package domain

import "time"

// TradeReceipt is returned to the participant after a committed trade.
// Offer is a snapshot taken after the stock adjustment.
type TradeReceipt struct {
	ReceiptID     string
	ShopID        string
	Participant   string
	Offer         Offer
	Lots          int64
	TotalQuantity int64
	TotalPrice    int64
	Direction     TradeDirection
	ExecutedAt    time.Time
}

// TradeLogEntry is the durable audit record of a committed trade.
type TradeLogEntry struct {
	ReceiptID     string
	ShopID        string
	ShopOwner     string
	Participant   string
	ItemKind      string
	Lots          int64
	TotalQuantity int64
	TotalPrice    int64
	Direction     TradeDirection
	ExecutedAt    time.Time
}

type TradeLogRepository interface {
	Append(entry *TradeLogEntry) error
	ListByShop(shopID string, limit int) ([]*TradeLogEntry, error)
}

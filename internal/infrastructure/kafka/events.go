package kafka

import "time"

// TradeEvent notifies downstream consumers (trade notification bots,
// analytics) about a committed trade.
type TradeEvent struct {
	ReceiptID     string    `json:"receipt_id"`
	ShopID        string    `json:"shop_id"`
	ShopOwner     string    `json:"shop_owner"`
	Participant   string    `json:"participant"`
	ItemKind      string    `json:"item_kind"`
	Lots          int64     `json:"lots"`
	TotalQuantity int64     `json:"total_quantity"`
	TotalPrice    int64     `json:"total_price"`
	Direction     string    `json:"direction"`
	ExecutedAt    time.Time `json:"executed_at"`
}

type ShopEventType string

const (
	ShopCreated   ShopEventType = "SHOP_CREATED"
	ShopRemoved   ShopEventType = "SHOP_REMOVED"
	ShopSuspended ShopEventType = "SHOP_SUSPENDED"
	ShopResumed   ShopEventType = "SHOP_RESUMED"
)

type ShopEvent struct {
	Type   ShopEventType `json:"type"`
	ShopID string        `json:"shop_id"`
	Owner  string        `json:"owner"`
	Name   string        `json:"name"`
	World  string        `json:"world"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Z      int           `json:"z"`
}

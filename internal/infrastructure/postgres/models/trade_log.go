package models

import "time"

type TradeLogModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	ReceiptID     string `gorm:"uniqueIndex"`
	ShopID        string `gorm:"index"`
	ShopOwner     string
	Participant   string `gorm:"index"`
	ItemKind      string
	Lots          int64
	TotalQuantity int64
	TotalPrice    int64
	Direction     string
	ExecutedAt    time.Time
}

func (TradeLogModel) TableName() string {
	return "trade_logs"
}

package models

import "time"

type ShopModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Owner     string `gorm:"index"`
	World     string `gorm:"uniqueIndex:idx_shop_location"`
	X         int    `gorm:"uniqueIndex:idx_shop_location"`
	Y         int    `gorm:"uniqueIndex:idx_shop_location"`
	Z         int    `gorm:"uniqueIndex:idx_shop_location"`
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Offers []OfferModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
}

func (ShopModel) TableName() string {
	return "shops"
}

type OfferModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ShopID    string `gorm:"index"`
	Position  int
	Kind      string
	ItemKind  string
	ItemAttrs string
	LotSize   int64
	Price     int64
	Stock     int64
	Unbounded bool
	Capacity  int64
}

func (OfferModel) TableName() string {
	return "shop_offers"
}

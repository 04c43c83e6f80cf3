package repository

import (
	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/mappers"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultShopSnapshotRepository stores registry snapshots. The whole
// snapshot is replaced in one transaction so a crash mid-flush never
// leaves a mixed generation on disk.
type DefaultShopSnapshotRepository struct {
	DB *gorm.DB
}

func NewDefaultShopSnapshotRepository(db *gorm.DB) *DefaultShopSnapshotRepository {
	return &DefaultShopSnapshotRepository{DB: db}
}

func (r *DefaultShopSnapshotRepository) ReplaceAll(records []domain.ShopRecord) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.OfferModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.ShopModel{}).Error; err != nil {
			return err
		}
		for _, record := range records {
			shopModel := mappers.ToShopModel(record)
			if err := tx.Create(&shopModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DefaultShopSnapshotRepository) LoadAll() ([]domain.ShopRecord, error) {
	var shopModels []models.ShopModel
	err := r.DB.
		Preload("Offers", func(db *gorm.DB) *gorm.DB {
			return db.Order("shop_offers.position ASC")
		}).
		Order("shops.created_at ASC").
		Find(&shopModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.ShopRecord, 0, len(shopModels))
	for _, shopModel := range shopModels {
		records = append(records, mappers.ToShopRecord(shopModel))
	}
	return records, nil
}

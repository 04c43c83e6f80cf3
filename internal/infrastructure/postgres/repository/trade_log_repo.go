package repository

import (
	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/mappers"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTradeLogRepository struct {
	DB *gorm.DB
}

func NewDefaultTradeLogRepository(db *gorm.DB) *DefaultTradeLogRepository {
	return &DefaultTradeLogRepository{DB: db}
}

func (r *DefaultTradeLogRepository) Append(entry *domain.TradeLogEntry) error {
	logModel := mappers.ToTradeLogModel(entry)
	return r.DB.Create(&logModel).Error
}

func (r *DefaultTradeLogRepository) ListByShop(shopID string, limit int) ([]*domain.TradeLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var logModels []models.TradeLogModel
	err := r.DB.
		Where("shop_id = ?", shopID).
		Order("executed_at DESC").
		Limit(limit).
		Find(&logModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.TradeLogEntry, 0, len(logModels))
	for _, logModel := range logModels {
		entries = append(entries, mappers.ToTradeLogEntry(logModel))
	}
	return entries, nil
}

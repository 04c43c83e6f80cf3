package postgres

import (
	"log"

	"github.com/questforge/shopkeeper-service/internal/config"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ShopConfig) *gorm.DB {
	dsn := cfg.ShopDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.ShopModel{}, &models.OfferModel{}, &models.TradeLogModel{})

	return db
}

package mappers

import (
	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/models"
)

func ToShopModel(record domain.ShopRecord) models.ShopModel {
	offers := make([]models.OfferModel, len(record.Offers))
	for i, offer := range record.Offers {
		offers[i] = models.OfferModel{
			ShopID:    record.ID,
			Position:  i,
			Kind:      string(offer.Kind),
			ItemKind:  offer.ItemKind,
			ItemAttrs: offer.ItemAttrs,
			LotSize:   offer.LotSize,
			Price:     offer.Price,
			Stock:     offer.Stock,
			Unbounded: offer.Unbounded,
			Capacity:  offer.Capacity,
		}
	}
	return models.ShopModel{
		ID:        record.ID,
		Name:      record.Name,
		Owner:     record.Owner,
		World:     record.Location.World,
		X:         record.Location.X,
		Y:         record.Location.Y,
		Z:         record.Location.Z,
		State:     string(record.State),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Offers:    offers,
	}
}

func ToShopRecord(model models.ShopModel) domain.ShopRecord {
	offers := make([]domain.OfferRecord, len(model.Offers))
	for i, offer := range model.Offers {
		offers[i] = domain.OfferRecord{
			Kind:      domain.TradeKind(offer.Kind),
			ItemKind:  offer.ItemKind,
			ItemAttrs: offer.ItemAttrs,
			LotSize:   offer.LotSize,
			Price:     offer.Price,
			Stock:     offer.Stock,
			Unbounded: offer.Unbounded,
			Capacity:  offer.Capacity,
		}
	}
	return domain.ShopRecord{
		ID:    model.ID,
		Name:  model.Name,
		Owner: model.Owner,
		Location: domain.Location{
			World: model.World,
			X:     model.X,
			Y:     model.Y,
			Z:     model.Z,
		},
		State:     domain.ShopState(model.State),
		Offers:    offers,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToTradeLogModel(entry *domain.TradeLogEntry) models.TradeLogModel {
	return models.TradeLogModel{
		ReceiptID:     entry.ReceiptID,
		ShopID:        entry.ShopID,
		ShopOwner:     entry.ShopOwner,
		Participant:   entry.Participant,
		ItemKind:      entry.ItemKind,
		Lots:          entry.Lots,
		TotalQuantity: entry.TotalQuantity,
		TotalPrice:    entry.TotalPrice,
		Direction:     string(entry.Direction),
		ExecutedAt:    entry.ExecutedAt,
	}
}

func ToTradeLogEntry(model models.TradeLogModel) *domain.TradeLogEntry {
	return &domain.TradeLogEntry{
		ReceiptID:     model.ReceiptID,
		ShopID:        model.ShopID,
		ShopOwner:     model.ShopOwner,
		Participant:   model.Participant,
		ItemKind:      model.ItemKind,
		Lots:          model.Lots,
		TotalQuantity: model.TotalQuantity,
		TotalPrice:    model.TotalPrice,
		Direction:     domain.TradeDirection(model.Direction),
		ExecutedAt:    model.ExecutedAt,
	}
}

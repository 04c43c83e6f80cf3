package mappers

import (
	"testing"
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopRecordRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	record := domain.ShopRecord{
		ID:       "shop-1",
		Name:     "Iron Shop",
		Owner:    "alice",
		Location: domain.Location{World: "overworld", X: 10, Y: 64, Z: -3},
		State:    domain.StateActive,
		Offers: []domain.OfferRecord{
			{Kind: domain.KindSell, ItemKind: "iron_ingot", LotSize: 1, Price: 5, Stock: 10, Capacity: 100},
			{Kind: domain.KindBiDirectional, ItemKind: "enchanted_book", ItemAttrs: `{"enchant":"sharpness_5"}`, LotSize: 1, Price: 120, Unbounded: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	model := ToShopModel(record)
	assert.Equal(t, "shop-1", model.ID)
	assert.Equal(t, "overworld", model.World)
	require.Len(t, model.Offers, 2)
	// offer ordering survives via the position column
	assert.Equal(t, 0, model.Offers[0].Position)
	assert.Equal(t, 1, model.Offers[1].Position)
	assert.Equal(t, "shop-1", model.Offers[1].ShopID)

	assert.Equal(t, record, ToShopRecord(model))
}

package registry

import (
	"testing"
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	reg := New(testLimits(), nil)

	shop, err := reg.CreateShop("alice", "Iron Shop", loc(1), []domain.Offer{testOffer()})
	require.NoError(t, err)
	admin, err := reg.CreateShop(domain.SystemOwner, "Server Shop", loc(2), []domain.Offer{
		{Kind: domain.KindBiDirectional, Item: domain.ItemSpec{Kind: "gold_ingot"}, LotSize: 2, Price: 9, Stock: domain.UnboundedStock()},
	})
	require.NoError(t, err)
	require.NoError(t, reg.Suspend(admin.ID))

	records := reg.Snapshot()
	require.Len(t, records, 2)

	restored := New(testLimits(), nil)
	excluded := restored.Restore(records)
	assert.Zero(t, excluded)
	assert.False(t, restored.Dirty())
	assert.Equal(t, 2, restored.Count())

	got, ok := restored.FindByID(shop.ID)
	require.True(t, ok)
	assert.Equal(t, shop.Name, got.Name)
	assert.Equal(t, shop.Owner, got.Owner)
	assert.Equal(t, shop.Location, got.Location)
	assert.Equal(t, shop.Catalog, got.Catalog)
	assert.Equal(t, domain.StateActive, got.State)

	got, ok = restored.FindByID(admin.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StateSuspended, got.State)
	assert.True(t, got.Catalog[0].Stock.Unbounded)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	reg := New(testLimits(), nil)
	shop, err := reg.CreateShop("alice", "", loc(1), []domain.Offer{testOffer()})
	require.NoError(t, err)

	records := reg.Snapshot()
	require.NoError(t, shop.Catalog[0].AdjustStock(-5))

	assert.Equal(t, int64(10), records[0].Offers[0].Stock)
	assert.Equal(t, int64(5), shop.Catalog[0].Stock.Value)
}

func TestRestoreExcludesDuplicateLocations(t *testing.T) {
	records := []domain.ShopRecord{
		{ID: "shop-1", Owner: "alice", Location: loc(1), State: domain.StateActive, CreatedAt: time.Now()},
		{ID: "shop-2", Owner: "bob", Location: loc(1), State: domain.StateActive, CreatedAt: time.Now()},
		{ID: "shop-3", Owner: "carol", Location: loc(2), State: domain.StateActive, CreatedAt: time.Now()},
	}

	reg := New(testLimits(), nil)
	excluded := reg.Restore(records)

	assert.Equal(t, 1, excluded)
	assert.Equal(t, 2, reg.Count())

	// earlier record wins the contested location
	got, ok := reg.FindByLocation(loc(1))
	require.True(t, ok)
	assert.Equal(t, "shop-1", got.ID)
}

func TestRestoreExcludesCorruptRecords(t *testing.T) {
	records := []domain.ShopRecord{
		{ID: "", Owner: "alice", Location: loc(1), State: domain.StateActive},
		{ID: "shop-2", Owner: "bob", Location: loc(2), State: domain.StateActive,
			Offers: []domain.OfferRecord{{ItemKind: "iron_ingot", LotSize: 0, Price: 5}}},
		{ID: "shop-3", Owner: "carol", Location: loc(3), State: domain.StateActive,
			Offers: []domain.OfferRecord{{ItemKind: "iron_ingot", LotSize: 1, Price: 5, Stock: -4, Capacity: 10}}},
		{ID: "shop-4", Owner: "dave", Location: loc(4), State: domain.StateActive},
	}

	reg := New(testLimits(), nil)
	excluded := reg.Restore(records)

	assert.Equal(t, 3, excluded)
	assert.Equal(t, 1, reg.Count())
	_, ok := reg.FindByID("shop-4")
	assert.True(t, ok)
}

func TestRestoreNormalizesUnknownState(t *testing.T) {
	records := []domain.ShopRecord{
		{ID: "shop-1", Owner: "alice", Location: loc(1), State: "GARBAGE", CreatedAt: time.Now()},
	}

	reg := New(testLimits(), nil)
	require.Zero(t, reg.Restore(records))

	got, ok := reg.FindByID("shop-1")
	require.True(t, ok)
	assert.Equal(t, domain.StateSuspended, got.State)
}

func TestRestoreReplacesExistingState(t *testing.T) {
	reg := New(testLimits(), nil)
	stale, err := reg.CreateShop("alice", "", loc(9), nil)
	require.NoError(t, err)

	reg.Restore([]domain.ShopRecord{
		{ID: "shop-1", Owner: "bob", Location: loc(1), State: domain.StateActive, CreatedAt: time.Now()},
	})

	_, ok := reg.FindByID(stale.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Count())
}

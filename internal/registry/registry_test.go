package registry

import (
	"testing"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimits() Limits {
	return Limits{MaxShopsPerOwner: 2, MaxOfferStock: 10000}
}

func testOffer() domain.Offer {
	return domain.Offer{
		Kind:    domain.KindSell,
		Item:    domain.ItemSpec{Kind: "iron_ingot"},
		LotSize: 1,
		Price:   5,
		Stock:   domain.BoundedStock(10, 100),
	}
}

func loc(x int) domain.Location {
	return domain.Location{World: "overworld", X: x, Y: 64, Z: 0}
}

func TestCreateShop(t *testing.T) {
	reg := New(testLimits(), nil)

	shop, err := reg.CreateShop("alice", "Iron Shop", loc(1), []domain.Offer{testOffer()})
	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Equal(t, domain.StateActive, shop.State)
	assert.True(t, reg.Dirty())

	found, ok := reg.FindByID(shop.ID)
	require.True(t, ok)
	assert.Same(t, shop, found)

	found, ok = reg.FindByLocation(loc(1))
	require.True(t, ok)
	assert.Same(t, shop, found)
}

func TestCreateShopLocationOccupied(t *testing.T) {
	reg := New(testLimits(), nil)

	_, err := reg.CreateShop("alice", "", loc(1), nil)
	require.NoError(t, err)

	_, err = reg.CreateShop("bob", "", loc(1), nil)
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)
}

func TestSuspendedShopKeepsItsLocation(t *testing.T) {
	reg := New(testLimits(), nil)

	first, err := reg.CreateShop("alice", "", loc(1), nil)
	require.NoError(t, err)
	require.NoError(t, reg.Suspend(first.ID))

	_, err = reg.CreateShop("bob", "", loc(1), nil)
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)

	require.NoError(t, reg.Resume(first.ID))
	got, ok := reg.FindByLocation(loc(1))
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)

	// a snapshot of the surviving state restores without exclusions
	restored := New(testLimits(), nil)
	assert.Zero(t, restored.Restore(reg.Snapshot()))
	assert.Equal(t, reg.Count(), restored.Count())
}

func TestCreateShopOwnerLimit(t *testing.T) {
	reg := New(testLimits(), nil)

	_, err := reg.CreateShop("alice", "", loc(1), nil)
	require.NoError(t, err)
	_, err = reg.CreateShop("alice", "", loc(2), nil)
	require.NoError(t, err)

	_, err = reg.CreateShop("alice", "", loc(3), nil)
	assert.ErrorIs(t, err, domain.ErrOwnerLimitExceeded)

	// the system owner is exempt from the cap
	for x := 10; x < 15; x++ {
		_, err = reg.CreateShop(domain.SystemOwner, "", loc(x), nil)
		require.NoError(t, err)
	}
}

func TestCreateShopRejectsBadOffers(t *testing.T) {
	reg := New(testLimits(), nil)

	badLot := testOffer()
	badLot.LotSize = 0
	_, err := reg.CreateShop("alice", "", loc(1), []domain.Offer{badLot})
	assert.ErrorIs(t, err, domain.ErrInvalidLotCount)

	badPrice := testOffer()
	badPrice.Price = -1
	_, err = reg.CreateShop("alice", "", loc(1), []domain.Offer{badPrice})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestCreateShopClampsStockCapacity(t *testing.T) {
	reg := New(testLimits(), nil)

	offer := testOffer()
	offer.Stock = domain.BoundedStock(50, 99999999)
	shop, err := reg.CreateShop("alice", "", loc(1), []domain.Offer{offer})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), shop.Catalog[0].Stock.Capacity)
}

func TestRemoveShopIdempotent(t *testing.T) {
	reg := New(testLimits(), nil)

	shop, err := reg.CreateShop("alice", "", loc(1), nil)
	require.NoError(t, err)

	var hookCalls []string
	reg.OnRemove(func(shopID string) { hookCalls = append(hookCalls, shopID) })

	assert.True(t, reg.RemoveShop(shop.ID))
	assert.False(t, reg.RemoveShop(shop.ID))
	assert.False(t, reg.RemoveShop("never-existed"))

	_, ok := reg.FindByID(shop.ID)
	assert.False(t, ok)
	_, ok = reg.FindByLocation(loc(1))
	assert.False(t, ok)
	assert.Equal(t, []string{shop.ID}, hookCalls)

	// location is free again
	_, err = reg.CreateShop("bob", "", loc(1), nil)
	assert.NoError(t, err)
}

func TestListByOwnerCreationOrder(t *testing.T) {
	reg := New(Limits{MaxShopsPerOwner: 10, MaxOfferStock: 10000}, nil)

	first, _ := reg.CreateShop("alice", "first", loc(1), nil)
	_, _ = reg.CreateShop("bob", "other", loc(2), nil)
	second, _ := reg.CreateShop("alice", "second", loc(3), nil)

	var names []string
	for shop := range reg.ListByOwner("alice") {
		names = append(names, shop.Name)
	}
	assert.Equal(t, []string{"first", "second"}, names)

	// the sequence is restartable
	n := 0
	for range reg.ListByOwner("alice") {
		n++
	}
	assert.Equal(t, 2, n)

	reg.RemoveShop(first.ID)
	names = names[:0]
	for shop := range reg.ListByOwner("alice") {
		names = append(names, shop.Name)
	}
	assert.Equal(t, []string{"second"}, names)
	_ = second
}

func TestSuspendResume(t *testing.T) {
	reg := New(testLimits(), nil)

	shop, err := reg.CreateShop("alice", "", loc(1), nil)
	require.NoError(t, err)
	reg.ClearDirty()

	require.NoError(t, reg.Suspend(shop.ID))
	assert.Equal(t, domain.StateSuspended, shop.State)
	assert.True(t, reg.Dirty())

	require.NoError(t, reg.Resume(shop.ID))
	assert.Equal(t, domain.StateActive, shop.State)

	assert.ErrorIs(t, reg.Suspend("missing"), domain.ErrShopNotFound)
	assert.ErrorIs(t, reg.Resume("missing"), domain.ErrShopNotFound)
}

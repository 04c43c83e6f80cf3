package host

import (
	"context"
	"fmt"
	"testing"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/hostengine"
	"github.com/questforge/shopkeeper-service/internal/registry"
	"github.com/questforge/shopkeeper-service/internal/tickloop"
	"github.com/questforge/shopkeeper-service/internal/usecase/catalog"
	"github.com/questforge/shopkeeper-service/internal/usecase/session"
	"github.com/questforge/shopkeeper-service/internal/usecase/shop"
	"github.com/questforge/shopkeeper-service/internal/usecase/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLedger struct {
	balances map[string]int64
}

func (m *mapLedger) BalanceOf(participant string) (int64, error) {
	return m.balances[participant], nil
}

func (m *mapLedger) Debit(participant string, amount int64) error {
	if m.balances[participant] < amount {
		return fmt.Errorf("account %s: %w", participant, domain.ErrInsufficientFunds)
	}
	m.balances[participant] -= amount
	return nil
}

func (m *mapLedger) Credit(participant string, amount int64) error {
	m.balances[participant] += amount
	return nil
}

type testStack struct {
	handler   *Handler
	registry  *registry.Registry
	ledger    *mapLedger
	inventory *hostengine.InMemoryInventory
}

// newTestStack wires the full core behind a running tick loop, the way
// main does, with in-process ledger and inventory.
func newTestStack(t *testing.T) *testStack {
	t.Helper()

	reg := registry.New(registry.Limits{MaxShopsPerOwner: 10, MaxOfferStock: 10000}, nil)
	ledger := &mapLedger{balances: map[string]int64{"alice": 100}}
	inventory := hostengine.NewInMemoryInventory(1000)

	tradeUsecase, err := trade.NewDefaultTradeUsecase(reg, ledger, inventory, nil, nil, nil)
	require.NoError(t, err)
	sessionUsecase := session.NewDefaultSessionUsecase(reg, tradeUsecase, hostengine.LogView{})
	shopUsecase := shop.NewDefaultShopUsecase(reg, nil, nil)
	catalogUsecase := catalog.NewDefaultCatalogUsecase(reg)

	loop := tickloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go loop.Run(ctx)

	return &testStack{
		handler:   NewHandler(loop, reg, sessionUsecase, shopUsecase, catalogUsecase),
		registry:  reg,
		ledger:    ledger,
		inventory: inventory,
	}
}

func ironOffer() domain.Offer {
	return domain.Offer{
		Kind:    domain.KindSell,
		Item:    domain.ItemSpec{Kind: "iron_ingot"},
		LotSize: 1,
		Price:   5,
		Stock:   domain.BoundedStock(10, 100),
	}
}

func TestFullTradeFlow(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()
	location := domain.Location{World: "overworld", X: 1, Y: 64, Z: 1}

	created, err := stack.handler.OnCreateShop(ctx, CreateShopEvent{
		Owner:    "bob",
		Name:     "Iron Shop",
		Location: location,
		Offers:   []domain.Offer{ironOffer()},
	})
	require.NoError(t, err)

	require.NoError(t, stack.handler.OnOpenShop(ctx, OpenShopEvent{Participant: "alice", Location: location}))
	require.NoError(t, stack.handler.OnTradeIntent(ctx, TradeIntentEvent{
		Participant: "alice",
		OfferIndex:  0,
		Lots:        2,
		Direction:   domain.DirectionBuyFromShop,
	}))

	receipt, err := stack.handler.OnConfirm(ctx, ConfirmEvent{Participant: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), receipt.TotalPrice)
	assert.Equal(t, int64(90), stack.ledger.balances["alice"])
	assert.Equal(t, int64(10), stack.ledger.balances["bob"])
	assert.Equal(t, int64(2), stack.inventory.Count("alice", domain.ItemSpec{Kind: "iron_ingot"}))
	assert.Equal(t, int64(8), created.Catalog[0].Stock.Value)

	require.NoError(t, stack.handler.OnCloseView(ctx, CloseViewEvent{Participant: "alice"}))
}

func TestOpenShopUnknownLocation(t *testing.T) {
	stack := newTestStack(t)

	err := stack.handler.OnOpenShop(context.Background(), OpenShopEvent{
		Participant: "alice",
		Location:    domain.Location{World: "overworld", X: 9, Y: 9, Z: 9},
	})
	assert.ErrorIs(t, err, domain.ErrShopNotFound)
}

func TestConfirmWithoutIntent(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()
	location := domain.Location{World: "overworld", X: 1, Y: 64, Z: 1}

	_, err := stack.handler.OnCreateShop(ctx, CreateShopEvent{Owner: "bob", Location: location})
	require.NoError(t, err)
	require.NoError(t, stack.handler.OnOpenShop(ctx, OpenShopEvent{Participant: "alice", Location: location}))

	_, err = stack.handler.OnConfirm(ctx, ConfirmEvent{Participant: "alice"})
	assert.ErrorIs(t, err, domain.ErrNoPendingTrade)
}

func TestRemoveShopAuthorization(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	created, err := stack.handler.OnCreateShop(ctx, CreateShopEvent{
		Owner:    "bob",
		Location: domain.Location{World: "overworld", X: 1, Y: 64, Z: 1},
	})
	require.NoError(t, err)

	err = stack.handler.OnRemoveShop(ctx, RemoveShopEvent{Actor: "mallory", ShopID: created.ID})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	require.NoError(t, stack.handler.OnRemoveShop(ctx, RemoveShopEvent{Actor: "bob", ShopID: created.ID}))
	_, ok := stack.registry.FindByID(created.ID)
	assert.False(t, ok)

	// removal is idempotent
	require.NoError(t, stack.handler.OnRemoveShop(ctx, RemoveShopEvent{Actor: "bob", ShopID: created.ID}))
}

func TestEditOfferActions(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	created, err := stack.handler.OnCreateShop(ctx, CreateShopEvent{
		Owner:    "bob",
		Location: domain.Location{World: "overworld", X: 1, Y: 64, Z: 1},
		Offers:   []domain.Offer{ironOffer()},
	})
	require.NoError(t, err)

	require.NoError(t, stack.handler.OnEditOffer(ctx, EditOfferEvent{
		Actor: "bob", ShopID: created.ID, Action: EditReprice, OfferIndex: 0, Price: 8,
	}))
	assert.Equal(t, int64(8), created.Catalog[0].Price)

	require.NoError(t, stack.handler.OnEditOffer(ctx, EditOfferEvent{
		Actor: "bob", ShopID: created.ID, Action: EditRestock, OfferIndex: 0, Delta: 20,
	}))
	assert.Equal(t, int64(30), created.Catalog[0].Stock.Value)

	require.NoError(t, stack.handler.OnEditOffer(ctx, EditOfferEvent{
		Actor: "bob", ShopID: created.ID, Action: EditAddOffer,
		Offer: domain.Offer{Kind: domain.KindBuy, Item: domain.ItemSpec{Kind: "coal"}, LotSize: 1, Price: 1, Stock: domain.BoundedStock(0, 10)},
	}))
	assert.Len(t, created.Catalog, 2)

	require.NoError(t, stack.handler.OnEditOffer(ctx, EditOfferEvent{
		Actor: "bob", ShopID: created.ID, Action: EditRemoveOffer, OfferIndex: 1,
	}))
	assert.Len(t, created.Catalog, 1)

	err = stack.handler.OnEditOffer(ctx, EditOfferEvent{
		Actor: "mallory", ShopID: created.ID, Action: EditReprice, OfferIndex: 0, Price: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestActivatePublishesBridge(t *testing.T) {
	stack := newTestStack(t)

	Activate(stack.handler)
	t.Cleanup(func() { Activate(nil) })

	assert.Same(t, stack.handler, Bridge())
}

func TestDisconnectEndsSession(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()
	location := domain.Location{World: "overworld", X: 1, Y: 64, Z: 1}

	_, err := stack.handler.OnCreateShop(ctx, CreateShopEvent{Owner: "bob", Location: location})
	require.NoError(t, err)
	require.NoError(t, stack.handler.OnOpenShop(ctx, OpenShopEvent{Participant: "alice", Location: location}))
	require.NoError(t, stack.handler.OnDisconnect(ctx, DisconnectEvent{Participant: "alice"}))

	err = stack.handler.OnTradeIntent(ctx, TradeIntentEvent{Participant: "alice", Lots: 1, Direction: domain.DirectionBuyFromShop})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

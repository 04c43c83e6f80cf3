package trade

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/kafka"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mutation is one step of the atomic apply phase. undo must revert
// exactly what apply did.
type mutation struct {
	apply func() error
	undo  func() error
}

// Execute validates and executes a trade against a shop's offer. Checks
// run before any mutation; the apply phase is all-or-nothing, rolling
// back every committed step if a later one fails. Must run on the tick
// loop.
func (uc *DefaultTradeUsecase) Execute(
	participant, shopID string,
	offerIndex int,
	lots int64,
	direction domain.TradeDirection) (*domain.TradeReceipt, error) {

	started := time.Now()

	receipt, err := uc.execute(participant, shopID, offerIndex, lots, direction, started)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordTradeFailed(failReason(err))
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTradeExecuted(
			receipt.ShopID, string(receipt.Direction),
			receipt.TotalPrice, time.Since(started).Seconds())
	}
	return receipt, nil
}

func (uc *DefaultTradeUsecase) execute(
	participant, shopID string,
	offerIndex int,
	lots int64,
	direction domain.TradeDirection,
	started time.Time) (*domain.TradeReceipt, error) {

	shop, ok := uc.Registry.FindByID(shopID)
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	if shop.State == domain.StateSuspended {
		return nil, domain.ErrShopSuspended
	}

	offer, err := shop.OfferAt(offerIndex)
	if err != nil {
		return nil, err
	}
	if lots <= 0 {
		return nil, domain.ErrInvalidLotCount
	}
	if !offer.Executable(direction) {
		return nil, domain.ErrWrongDirection
	}

	// A negative bounded stock means an earlier invariant break slipped
	// through. Suspend the shop instead of trading on top of it.
	if !offer.Stock.Unbounded && offer.Stock.Value < 0 {
		if suspendErr := uc.Registry.Suspend(shopID); suspendErr == nil {
			slog.Error("negative stock detected, shop suspended",
				"shop_id", shopID, "offer_index", offerIndex, "stock", offer.Stock.Value)
		}
		return nil, status.Errorf(codes.Internal,
			"stock invariant violated for shop %s offer %d", shopID, offerIndex)
	}

	// A lot count large enough to wrap the int64 totals would sail past
	// the affordability checks with a zero or negative total.
	if offer.Price > 0 && lots > math.MaxInt64/offer.Price {
		return nil, domain.ErrInvalidLotCount
	}
	if offer.LotSize > 0 && lots > math.MaxInt64/offer.LotSize {
		return nil, domain.ErrInvalidLotCount
	}

	totalPrice := offer.Price * lots
	totalQuantity := offer.LotSize * lots

	var steps []mutation
	switch direction {
	case domain.DirectionBuyFromShop:
		steps, err = uc.sellSteps(participant, shop, offer, totalPrice, totalQuantity)
	case domain.DirectionSellToShop:
		steps, err = uc.buySteps(participant, shop, offer, totalPrice, totalQuantity)
	default:
		return nil, status.Errorf(codes.Internal, "unknown trade direction %q", direction)
	}
	if err != nil {
		return nil, err
	}

	if err := applyAll(steps); err != nil {
		return nil, err
	}

	shop.UpdatedAt = started
	uc.Registry.MarkDirty()

	receipt := &domain.TradeReceipt{
		ReceiptID:     uc.newReceiptID(),
		ShopID:        shop.ID,
		Participant:   participant,
		Offer:         *offer,
		Lots:          lots,
		TotalQuantity: totalQuantity,
		TotalPrice:    totalPrice,
		Direction:     direction,
		ExecutedAt:    started,
	}
	uc.afterCommit(shop, receipt)
	return receipt, nil
}

// sellSteps covers shop → participant trades: stock, participant funds
// and inventory room are checked up front, then currency and items move
// in compensatable steps.
func (uc *DefaultTradeUsecase) sellSteps(
	participant string,
	shop *domain.Shop,
	offer *domain.Offer,
	totalPrice, totalQuantity int64) ([]mutation, error) {

	if !offer.Stock.Covers(totalQuantity) {
		return nil, domain.ErrInsufficientStock
	}
	balance, err := uc.Ledger.BalanceOf(participant)
	if err != nil {
		return nil, classifyLedgerErr("balance check", err)
	}
	if balance < totalPrice {
		return nil, domain.ErrInsufficientFunds
	}
	if uc.Inventory.FreeCapacity(participant, offer.Item) < totalQuantity {
		return nil, domain.ErrInventoryFull
	}

	steps := []mutation{
		{
			apply: func() error {
				if err := uc.Ledger.Debit(participant, totalPrice); err != nil {
					return classifyLedgerErr("debit participant", err)
				}
				return nil
			},
			undo: func() error { return uc.Ledger.Credit(participant, totalPrice) },
		},
	}
	if !shop.IsAdmin() {
		steps = append(steps, mutation{
			apply: func() error {
				if err := uc.Ledger.Credit(shop.Owner, totalPrice); err != nil {
					return classifyLedgerErr("credit owner", err)
				}
				return nil
			},
			undo: func() error { return uc.Ledger.Debit(shop.Owner, totalPrice) },
		})
	}
	steps = append(steps,
		mutation{
			apply: func() error { return uc.Inventory.Give(participant, offer.Item, totalQuantity) },
			undo:  func() error { return uc.Inventory.Take(participant, offer.Item, totalQuantity) },
		},
		mutation{
			apply: func() error { return offer.AdjustStock(-totalQuantity) },
			undo:  func() error { return offer.AdjustStock(totalQuantity) },
		},
	)
	return steps, nil
}

// buySteps covers participant → shop trades.
func (uc *DefaultTradeUsecase) buySteps(
	participant string,
	shop *domain.Shop,
	offer *domain.Offer,
	totalPrice, totalQuantity int64) ([]mutation, error) {

	if uc.Inventory.Count(participant, offer.Item) < totalQuantity {
		return nil, domain.ErrInsufficientItems
	}
	if !shop.IsAdmin() {
		balance, err := uc.Ledger.BalanceOf(shop.Owner)
		if err != nil {
			return nil, classifyLedgerErr("owner balance check", err)
		}
		if balance < totalPrice {
			return nil, domain.ErrShopInsufficientFunds
		}
	}
	if !offer.Stock.CanReceive(totalQuantity) {
		return nil, domain.ErrStockCapacityExceeded
	}

	var steps []mutation
	if !shop.IsAdmin() {
		steps = append(steps, mutation{
			apply: func() error {
				if err := uc.Ledger.Debit(shop.Owner, totalPrice); err != nil {
					return classifyLedgerErr("debit owner", err)
				}
				return nil
			},
			undo: func() error { return uc.Ledger.Credit(shop.Owner, totalPrice) },
		})
	}
	steps = append(steps,
		mutation{
			apply: func() error {
				if err := uc.Ledger.Credit(participant, totalPrice); err != nil {
					return classifyLedgerErr("credit participant", err)
				}
				return nil
			},
			undo: func() error { return uc.Ledger.Debit(participant, totalPrice) },
		},
		mutation{
			apply: func() error { return uc.Inventory.Take(participant, offer.Item, totalQuantity) },
			undo:  func() error { return uc.Inventory.Give(participant, offer.Item, totalQuantity) },
		},
		mutation{
			apply: func() error { return offer.AdjustStock(totalQuantity) },
			undo:  func() error { return offer.AdjustStock(-totalQuantity) },
		},
	)
	return steps, nil
}

// applyAll runs the mutations in order. On failure every already
// applied step is undone in reverse before the error surfaces; no
// partial trade is ever observable.
func applyAll(steps []mutation) error {
	for i, step := range steps {
		if err := step.apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if undoErr := steps[j].undo(); undoErr != nil {
					slog.Error("trade rollback step failed",
						"step", j, "error", undoErr.Error())
				}
			}
			return err
		}
	}
	return nil
}

func (uc *DefaultTradeUsecase) afterCommit(shop *domain.Shop, receipt *domain.TradeReceipt) {
	if uc.TradeLog != nil {
		entry := &domain.TradeLogEntry{
			ReceiptID:     receipt.ReceiptID,
			ShopID:        receipt.ShopID,
			ShopOwner:     shop.Owner,
			Participant:   receipt.Participant,
			ItemKind:      receipt.Offer.Item.Kind,
			Lots:          receipt.Lots,
			TotalQuantity: receipt.TotalQuantity,
			TotalPrice:    receipt.TotalPrice,
			Direction:     receipt.Direction,
			ExecutedAt:    receipt.ExecutedAt,
		}
		go func() {
			if err := uc.TradeLog.Append(entry); err != nil {
				slog.Error("failed to append trade log", "receipt_id", entry.ReceiptID, "error", err.Error())
			}
		}()
	}

	if uc.Publisher != nil {
		event := kafka.TradeEvent{
			ReceiptID:     receipt.ReceiptID,
			ShopID:        receipt.ShopID,
			ShopOwner:     shop.Owner,
			Participant:   receipt.Participant,
			ItemKind:      receipt.Offer.Item.Kind,
			Lots:          receipt.Lots,
			TotalQuantity: receipt.TotalQuantity,
			TotalPrice:    receipt.TotalPrice,
			Direction:     string(receipt.Direction),
			ExecutedAt:    receipt.ExecutedAt,
		}
		go func() {
			if err := uc.Publisher.PublishTrade(event); err != nil {
				slog.Error("failed to publish trade event", "receipt_id", event.ReceiptID, "error", err.Error())
			}
		}()
	}
}

// classifyLedgerErr keeps insufficient-funds refusals distinct from
// provider failures; anything unclassified counts as unavailable so the
// caller knows it may retry.
func classifyLedgerErr(op string, err error) error {
	if errors.Is(err, domain.ErrInsufficientFunds) {
		return err
	}
	if errors.Is(err, domain.ErrLedgerUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrLedgerUnavailable, err)
}

func failReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrShopNotFound):
		return "shop_not_found"
	case errors.Is(err, domain.ErrShopSuspended):
		return "shop_suspended"
	case errors.Is(err, domain.ErrOfferNotFound):
		return "offer_not_found"
	case errors.Is(err, domain.ErrInvalidLotCount):
		return "invalid_lot_count"
	case errors.Is(err, domain.ErrWrongDirection):
		return "wrong_direction"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrStockCapacityExceeded):
		return "stock_capacity_exceeded"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrShopInsufficientFunds):
		return "shop_insufficient_funds"
	case errors.Is(err, domain.ErrInsufficientItems):
		return "insufficient_items"
	case errors.Is(err, domain.ErrInventoryFull):
		return "inventory_full"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return "ledger_unavailable"
	default:
		return "internal"
	}
}

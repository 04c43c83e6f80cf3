package trade

import (
	"github.com/jaevor/go-nanoid"
	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/kafka"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/metrics"
	"github.com/questforge/shopkeeper-service/internal/registry"
)

type TradeUsecase interface {
	Execute(participant, shopID string, offerIndex int, lots int64, direction domain.TradeDirection) (*domain.TradeReceipt, error)
}

// EventPublisher is the slice of the broker publisher the engine needs.
type EventPublisher interface {
	PublishTrade(event kafka.TradeEvent) error
}

type DefaultTradeUsecase struct {
	Registry  *registry.Registry
	Ledger    domain.LedgerPort
	Inventory domain.InventoryPort
	TradeLog  domain.TradeLogRepository
	Publisher EventPublisher
	Metrics   *metrics.TradeMetrics

	newReceiptID func() string
}

// NewDefaultTradeUsecase wires the engine. TradeLog, Publisher and
// Metrics may be nil; the trade path then skips them.
func NewDefaultTradeUsecase(
	shopRegistry *registry.Registry,
	ledger domain.LedgerPort,
	inventory domain.InventoryPort,
	tradeLog domain.TradeLogRepository,
	eventPublisher EventPublisher,
	tradeMetrics *metrics.TradeMetrics) (*DefaultTradeUsecase, error) {

	receiptID, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}

	return &DefaultTradeUsecase{
		Registry:     shopRegistry,
		Ledger:       ledger,
		Inventory:    inventory,
		TradeLog:     tradeLog,
		Publisher:    eventPublisher,
		Metrics:      tradeMetrics,
		newReceiptID: receiptID,
	}, nil
}

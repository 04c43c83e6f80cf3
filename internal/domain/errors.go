package domain

import "errors"

// Validation errors: bad input, no state change.
var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrOfferNotFound   = errors.New("offer not found")
	ErrInvalidLotCount = errors.New("invalid lot count")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrWrongDirection  = errors.New("offer does not serve this trade direction")
	ErrNotOwner        = errors.New("participant does not own this shop")
	ErrSessionClosed   = errors.New("trade session is closed")
	ErrTradeInFlight   = errors.New("another trade is already awaiting confirmation")
	ErrNoPendingTrade  = errors.New("no trade is awaiting confirmation")
)

// Resource errors: insufficient funds/stock/items/capacity, no state
// change, not retried.
var (
	ErrLocationOccupied      = errors.New("location already occupied by a shop")
	ErrOwnerLimitExceeded    = errors.New("owner shop limit exceeded")
	ErrShopSuspended         = errors.New("shop is suspended")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrStockCapacityExceeded = errors.New("stock capacity exceeded")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrShopInsufficientFunds = errors.New("shop has insufficient funds")
	ErrInsufficientItems     = errors.New("insufficient items")
	ErrInventoryFull         = errors.New("inventory full")
)

// External provider errors: transient, the caller may retry.
var (
	ErrLedgerUnavailable = errors.New("ledger provider unavailable")
)

// Persistence errors.
var (
	ErrCorruptRecord = errors.New("corrupt shop record")
)

package domain

// LedgerPort is the external economy capability the trade engine
// depends on. Amounts are int64 minor units. Implementations must
// return errors wrapping ErrInsufficientFunds when the account cannot
// cover a debit, and ErrLedgerUnavailable for provider failures, so the
// engine can tell a hard refusal from a transient one. Calls must be
// synchronous from the tick loop's perspective.
type LedgerPort interface {
	BalanceOf(participant string) (int64, error)
	Debit(participant string, amount int64) error
	Credit(participant string, amount int64) error
}

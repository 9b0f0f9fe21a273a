package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Balance is one currency slot of a wallet.
// swagger:model Balance
type Balance struct {
	// example: USD
	Currency string `json:"currency" db:"currency"`
	// Spendable funds
	// example: 1000.00
	Available decimal.Decimal `json:"available" db:"available"`
	// Funds reserved by in-flight transactions
	// example: 0
	Pending decimal.Decimal `json:"pending" db:"pending"`
	// Funds held administratively
	// example: 0
	Frozen decimal.Decimal `json:"frozen" db:"frozen"`
}

// NewBalance returns an empty slot for currency.
func NewBalance(currency string) Balance {
	return Balance{
		Currency:  currency,
		Available: decimal.Zero,
		Pending:   decimal.Zero,
		Frozen:    decimal.Zero,
	}
}

// Total is available + pending + frozen.
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Pending).Add(b.Frozen)
}

// Validate checks that no component went negative.
func (b Balance) Validate() error {
	if b.Available.IsNegative() || b.Pending.IsNegative() || b.Frozen.IsNegative() {
		return fmt.Errorf("%w: negative balance component in %s slot (available=%s pending=%s frozen=%s)",
			ErrInvariantViolation, b.Currency, b.Available, b.Pending, b.Frozen)
	}
	return nil
}

// ValidateAmount accepts strictly positive amounts with at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: at most two decimal places, got %s", ErrInvalidAmount, amount)
	}
	return nil
}

// SettleSide selects which half of a transfer Settle applies.
type SettleSide string

const (
	// SettleDebit clears the sender's pending reservation.
	SettleDebit SettleSide = "debit"
	// SettleCredit adds to the recipient's available funds.
	SettleCredit SettleSide = "credit"
)

// BalanceResponse represents a successful response with a single currency balance
// swagger:model BalanceResponse
type BalanceResponse struct {
	WalletID string  `json:"wallet_id"`
	Balance  Balance `json:"balance"`
}

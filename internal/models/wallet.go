package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default ceilings applied to new wallets, in the wallet's primary currency.
var (
	DefaultDailyLimit           = decimal.NewFromInt(10000)
	DefaultMonthlyLimit         = decimal.NewFromInt(50000)
	DefaultDailyWithdrawLimit   = decimal.NewFromInt(5000)
	DefaultMonthlyWithdrawLimit = decimal.NewFromInt(20000)
)

// AvailableSnapshot maps currency to available funds. It is recomputed on
// every ledger mutation and never aggregated across currencies.
type AvailableSnapshot map[string]decimal.Decimal

// Value implements driver.Valuer.
func (s AvailableSnapshot) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *AvailableSnapshot) Scan(src any) error {
	return scanJSON(src, s)
}

// Wallet is the per-user multi-currency account.
// swagger:model Wallet
type Wallet struct {
	WalletID             uuid.UUID          `json:"wallet_id" db:"wallet_id"`
	UserID               uuid.UUID          `json:"user_id" db:"user_id"`
	PrimaryCurrency      string             `json:"primary_currency" db:"primary_currency"`
	DailyLimit           decimal.Decimal    `json:"daily_limit" db:"daily_limit"`
	MonthlyLimit         decimal.Decimal    `json:"monthly_limit" db:"monthly_limit"`
	DailyWithdrawLimit   decimal.Decimal    `json:"daily_withdraw_limit" db:"daily_withdraw_limit"`
	MonthlyWithdrawLimit decimal.Decimal    `json:"monthly_withdraw_limit" db:"monthly_withdraw_limit"`
	DailySpent           decimal.Decimal    `json:"daily_spent" db:"daily_spent"`
	MonthlySpent         decimal.Decimal    `json:"monthly_spent" db:"monthly_spent"`
	LastResetDate        time.Time          `json:"last_reset_date" db:"last_reset_date"`
	IsActive             bool               `json:"is_active" db:"is_active"`
	PinHash              *string            `json:"-" db:"pin_hash"`
	TotalAvailable       AvailableSnapshot  `json:"total_available" db:"total_available"`
	Balances             map[string]Balance `json:"balances" db:"-"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" db:"updated_at"`
}

// NewWallet builds an active wallet with default limits and zero balances for
// the given seed currencies.
func NewWallet(userID uuid.UUID, primary string, seed []string, now time.Time) *Wallet {
	w := &Wallet{
		WalletID:             uuid.New(),
		UserID:               userID,
		PrimaryCurrency:      primary,
		DailyLimit:           DefaultDailyLimit,
		MonthlyLimit:         DefaultMonthlyLimit,
		DailyWithdrawLimit:   DefaultDailyWithdrawLimit,
		MonthlyWithdrawLimit: DefaultMonthlyWithdrawLimit,
		DailySpent:           decimal.Zero,
		MonthlySpent:         decimal.Zero,
		LastResetDate:        now.UTC(),
		IsActive:             true,
		TotalAvailable:       AvailableSnapshot{},
		Balances:             make(map[string]Balance, len(seed)),
		CreatedAt:            now.UTC(),
		UpdatedAt:            now.UTC(),
	}
	for _, c := range seed {
		w.Balances[c] = NewBalance(c)
		w.TotalAvailable[c] = decimal.Zero
	}
	return w
}

// HasPIN reports whether send and withdraw require a PIN.
func (w *Wallet) HasPIN() bool {
	return w.PinHash != nil && *w.PinHash != ""
}

// Limits returns the daily and monthly ceilings that apply to txType.
func (w *Wallet) Limits(txType TransactionType) (daily, monthly decimal.Decimal) {
	if txType == TypeWithdrawal {
		return w.DailyWithdrawLimit, w.MonthlyWithdrawLimit
	}
	return w.DailyLimit, w.MonthlyLimit
}

// ResetCountersIfNeeded zeroes the spend counters when the last reset happened
// on an earlier UTC day (daily) or month (monthly). It reports whether anything
// changed.
func (w *Wallet) ResetCountersIfNeeded(now time.Time) bool {
	now = now.UTC()
	last := w.LastResetDate.UTC()
	changed := false

	if DayStart(last).Before(DayStart(now)) {
		w.DailySpent = decimal.Zero
		changed = true
	}
	if MonthStart(last).Before(MonthStart(now)) {
		w.MonthlySpent = decimal.Zero
		changed = true
	}
	if changed {
		w.LastResetDate = now
	}
	return changed
}

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart truncates t to the first day of its month, UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

// SetPINRequest represents the JSON body for setting a wallet PIN
// swagger:model SetPINRequest
type SetPINRequest struct {
	// 4 to 6 digits
	// required: true
	// example: 1234
	PIN string `json:"pin" validate:"required,numeric,min=4,max=6"`
}

// CreateWalletRequest represents the JSON body for wallet creation
// swagger:model CreateWalletRequest
type CreateWalletRequest struct {
	// Primary currency; limits are denominated in it
	// example: USD
	PrimaryCurrency string `json:"primary_currency" validate:"omitempty,len=3"`
}

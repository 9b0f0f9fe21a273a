package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pagination defaults for history queries.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryFilter selects a page of a user's transactions.
type HistoryFilter struct {
	UserID uuid.UUID
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// Normalize clamps paging values.
func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
}

// Offset is the number of rows to skip.
func (f HistoryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// StatusSummary aggregates matching transactions of one status.
type StatusSummary struct {
	Status      TransactionStatus `json:"status" db:"status"`
	Count       int               `json:"count" db:"count"`
	TotalAmount decimal.Decimal   `json:"total_amount" db:"total_amount"`
}

// HistoryPage is one page of transaction history.
// swagger:model HistoryPage
type HistoryPage struct {
	Transactions []*Transaction  `json:"transactions"`
	Total        int             `json:"total"`
	Page         int             `json:"page"`
	Pages        int             `json:"pages"`
	Summary      []StatusSummary `json:"summary"`
}

// Decision is the verdict of a limit check.
type Decision struct {
	Allow            bool
	LimitAmount      decimal.Decimal
	LimitCurrency    string
	RemainingDaily   decimal.Decimal
	RemainingMonthly decimal.Decimal
}

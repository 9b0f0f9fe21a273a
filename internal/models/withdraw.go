package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawRequest represents the JSON body for withdrawing funds to a bank account
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Amount to withdraw
	// required: true
	// example: 50.0
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal"`

	// Currency
	// required: true
	// example: USD
	Currency string `json:"currency" validate:"required,len=3"`

	// Destination account
	// required: true
	BankAccount BankAccount `json:"bank_account" validate:"required"`

	// Wallet PIN when one is set
	// example: 1234
	PIN string `json:"pin,omitempty" validate:"omitempty,numeric,min=4,max=6"`
}

// WithdrawOrder is the service-level form of a withdrawal.
type WithdrawOrder struct {
	UserID         uuid.UUID
	Amount         decimal.Decimal
	Currency       string
	BankAccount    BankAccount
	PIN            string
	IdempotencyKey string
}

// WithdrawalCallbackRequest is delivered by the payout provider
// swagger:model WithdrawalCallbackRequest
type WithdrawalCallbackRequest struct {
	// example: true
	Succeeded bool `json:"succeeded"`
	// example: BNK-0001
	BankTransactionID string `json:"bank_transaction_id"`
	// example: account closed
	Reason string `json:"reason,omitempty"`
}

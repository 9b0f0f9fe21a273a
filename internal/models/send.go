package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendMoneyRequest represents the JSON body for a wallet-to-wallet transfer
// swagger:model SendMoneyRequest
type SendMoneyRequest struct {
	// Recipient email or phone
	// required: true
	// example: bob@example.com
	Recipient string `json:"recipient" validate:"required"`

	// Amount to send
	// required: true
	// example: 50.00
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal"`

	// Currency debited from the sender
	// required: true
	// example: USD
	Currency string `json:"currency" validate:"required,len=3"`

	// Currency credited to the recipient, when different
	// example: EUR
	TargetCurrency string `json:"target_currency,omitempty" validate:"omitempty,len=3"`

	// example: Rent share
	Description string `json:"description,omitempty" validate:"max=255"`

	// Wallet PIN when one is set
	// example: 1234
	PIN string `json:"pin,omitempty" validate:"omitempty,numeric,min=4,max=6"`
}

// SendOrder is the service-level form of a transfer.
type SendOrder struct {
	SenderID            uuid.UUID
	RecipientIdentifier string
	Amount              decimal.Decimal
	Currency            string
	TargetCurrency      string
	Description         string
	PIN                 string
	IdempotencyKey      string
}

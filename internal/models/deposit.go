package models

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome reported by the payment gateway.
type PaymentStatus string

const (
	PaymentSucceeded  PaymentStatus = "succeeded"
	PaymentFailed     PaymentStatus = "failed"
	PaymentProcessing PaymentStatus = "processing"
)

// PaymentIntent is a gateway-side deposit handle.
type PaymentIntent struct {
	ID           string        `json:"id"`
	ClientSecret string        `json:"client_secret"`
	Status       PaymentStatus `json:"status"`
}

// DepositRequest represents the JSON body for depositing funds
// swagger:model DepositRequest
type DepositRequest struct {
	// Amount to deposit
	// required: true
	// example: 100.0
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal"`

	// Currency
	// required: true
	// example: USD
	Currency string `json:"currency" validate:"required,len=3"`
}

// DepositResponse represents a created deposit awaiting payment
// swagger:model DepositResponse
type DepositResponse struct {
	Transaction  *Transaction `json:"transaction"`
	ClientSecret string       `json:"client_secret"`
}

// ConfirmDepositRequest represents the JSON body for confirming a deposit
// swagger:model ConfirmDepositRequest
type ConfirmDepositRequest struct {
	// required: true
	// example: TXN01J9Z3J6W8A4F7Q2B1C0D9E8F7
	TransactionID string `json:"transaction_id" validate:"required"`
}

// DepositCallbackRequest is delivered by the payment gateway webhook
// swagger:model DepositCallbackRequest
type DepositCallbackRequest struct {
	// example: true
	Succeeded bool `json:"succeeded"`
}

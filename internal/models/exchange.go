package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRequest represents the JSON body for currency exchange
// swagger:model ExchangeRequest
type ExchangeRequest struct {
	// Source currency
	// required: true
	// example: USD
	FromCurrency string `json:"from_currency" validate:"required,len=3"`

	// Target currency
	// required: true
	// example: EUR
	ToCurrency string `json:"to_currency" validate:"required,len=3,nefield=FromCurrency"`

	// Amount to exchange
	// required: true
	// example: 100.0
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal"`
}

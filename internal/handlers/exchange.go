package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// CurrencyExchanger defines the interface that the service must implement.
type CurrencyExchanger interface {
	Exchange(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, from, to string) (*models.Transaction, error)
}

// NewExchangeHandler returns an HTTP handler that converts between the caller's own slots.
// @Summary Exchange currency
// @Tags exchange
// @Accept json
// @Produce json
// @Param request body models.ExchangeRequest true "Exchange"
// @Success 201 {object} models.OperationResult "Exchange completed"
// @Failure 400 {object} models.OperationResult "Invalid request"
// @Failure 422 {object} models.OperationResult "Insufficient funds or rate unavailable"
// @Failure 503 {object} models.OperationResult "Exchange rates unavailable"
// @Router /exchange [post]
// @Security BearerAuth
func NewExchangeHandler(svc CurrencyExchanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.ExchangeRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.Exchange(r.Context(), userID, req.Amount, req.FromCurrency, req.ToCurrency)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewTransactionResult(tx))
	}
}

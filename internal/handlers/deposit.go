package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// Depositor defines the card top-up operations.
type Depositor interface {
	RequestDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency, customerRef string) (*models.DepositResponse, error)
	ConfirmDeposit(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error)
}

// NewDepositHandler returns an HTTP handler that opens a card payment intent.
// @Summary Deposit funds
// @Description Creates a pending deposit and a payment intent. Funds are credited once the payment succeeds.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.DepositRequest true "Deposit"
// @Success 201 {object} models.DepositResponse "Deposit pending"
// @Failure 400 {object} models.OperationResult "Invalid amount or currency"
// @Failure 503 {object} models.OperationResult "Payment provider unavailable"
// @Router /wallet/deposit [post]
// @Security BearerAuth
func NewDepositHandler(svc Depositor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.DepositRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		resp, err := svc.RequestDeposit(r.Context(), userID, req.Amount, req.Currency, userID.String())
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// NewConfirmDepositHandler returns an HTTP handler that confirms a pending deposit.
// @Summary Confirm deposit
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.ConfirmDepositRequest true "Deposit to confirm"
// @Success 200 {object} models.OperationResult "Deposit state"
// @Failure 403 {object} models.OperationResult "Not the depositor"
// @Failure 404 {object} models.OperationResult "Transaction not found"
// @Router /wallet/deposit/confirm [post]
// @Security BearerAuth
func NewConfirmDepositHandler(svc Depositor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.ConfirmDepositRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.ConfirmDeposit(r.Context(), req.TransactionID, userID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTransactionResult(tx))
	}
}

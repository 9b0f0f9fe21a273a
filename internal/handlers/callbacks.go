package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// WithdrawalConfirmer settles a payout once the bank reports its outcome.
type WithdrawalConfirmer interface {
	ConfirmWithdrawal(ctx context.Context, txID, bankTxID string, succeeded bool, reason string) (*models.Transaction, error)
}

// DepositResolver settles a deposit once the card processor reports its outcome.
type DepositResolver interface {
	HandleDepositCallback(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error)
}

// NewWithdrawalCallbackHandler returns the bank payout callback handler.
// @Summary Withdrawal callback
// @Tags callbacks
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body models.WithdrawalCallbackRequest true "Payout outcome"
// @Success 200 {object} models.OperationResult "Transaction"
// @Failure 401 {object} models.OperationResult "Bad callback secret"
// @Failure 404 {object} models.OperationResult "Transaction not found"
// @Router /callbacks/withdrawals/{id} [post]
func NewWithdrawalCallbackHandler(svc WithdrawalConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.WithdrawalCallbackRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.ConfirmWithdrawal(r.Context(), chi.URLParam(r, "id"), req.BankTransactionID, req.Succeeded, req.Reason)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTransactionResult(tx))
	}
}

// NewDepositCallbackHandler returns the card payment callback handler.
// @Summary Deposit callback
// @Tags callbacks
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body models.DepositCallbackRequest true "Payment outcome"
// @Success 200 {object} models.OperationResult "Transaction"
// @Failure 401 {object} models.OperationResult "Bad callback secret"
// @Failure 404 {object} models.OperationResult "Transaction not found"
// @Router /callbacks/deposits/{id} [post]
func NewDepositCallbackHandler(svc DepositResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DepositCallbackRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.HandleDepositCallback(r.Context(), chi.URLParam(r, "id"), req.Succeeded)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTransactionResult(tx))
	}
}

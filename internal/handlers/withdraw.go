package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// Withdrawer defines the interface that the service must implement.
type Withdrawer interface {
	Withdraw(ctx context.Context, order models.WithdrawOrder) (*models.Transaction, error)
}

// NewWithdrawHandler returns an HTTP handler for bank payouts.
// @Summary Withdraw funds
// @Description Reserves the amount plus withdrawal fee. The payout is settled by the bank callback.
// @Tags wallet
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client retry key"
// @Param request body models.WithdrawRequest true "Withdrawal"
// @Success 201 {object} models.OperationResult "Withdrawal accepted"
// @Failure 400 {object} models.OperationResult "Invalid request"
// @Failure 403 {object} models.OperationResult "KYC required or invalid PIN"
// @Failure 422 {object} models.OperationResult "Insufficient funds or limit exceeded"
// @Router /wallet/withdraw [post]
// @Security BearerAuth
func NewWithdrawHandler(svc Withdrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.WithdrawRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.Withdraw(r.Context(), models.WithdrawOrder{
			UserID:         userID,
			Amount:         req.Amount,
			Currency:       req.Currency,
			BankAccount:    req.BankAccount,
			PIN:            req.PIN,
			IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
		})
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewTransactionResult(tx))
	}
}

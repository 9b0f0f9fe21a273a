package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// MoneySender defines the interface that the service must implement.
type MoneySender interface {
	SendMoney(ctx context.Context, order models.SendOrder) (*models.Transaction, error)
}

// NewSendMoneyHandler returns an HTTP handler for peer-to-peer transfers.
// @Summary Send money
// @Description Reserves the amount plus fee on the sender and queues settlement. The recipient is an email, phone or wallet id.
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client retry key"
// @Param request body models.SendMoneyRequest true "Transfer"
// @Success 201 {object} models.OperationResult "Transaction accepted"
// @Failure 400 {object} models.OperationResult "Invalid request"
// @Failure 403 {object} models.OperationResult "KYC required or invalid PIN"
// @Failure 404 {object} models.OperationResult "Recipient not found"
// @Failure 409 {object} models.OperationResult "Idempotency conflict"
// @Failure 422 {object} models.OperationResult "Insufficient funds or limit exceeded"
// @Failure 429 {object} models.OperationResult "Too many transfers"
// @Failure 503 {object} models.OperationResult "Exchange rates unavailable"
// @Router /transactions/send [post]
// @Security BearerAuth
func NewSendMoneyHandler(svc MoneySender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.SendMoneyRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		tx, err := svc.SendMoney(r.Context(), models.SendOrder{
			SenderID:            userID,
			RecipientIdentifier: req.Recipient,
			Amount:              req.Amount,
			Currency:            req.Currency,
			TargetCurrency:      req.TargetCurrency,
			Description:         req.Description,
			PIN:                 req.PIN,
			IdempotencyKey:      r.Header.Get(IdempotencyKeyHeader),
		})
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewTransactionResult(tx))
	}
}

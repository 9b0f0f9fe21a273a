package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// TransactionReader defines the read side of the transaction service.
type TransactionReader interface {
	GetTransaction(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error)
	History(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error)
}

// TransactionCanceller defines the interface that the service must implement.
type TransactionCanceller interface {
	Cancel(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error)
}

// NewGetTransactionHandler returns an HTTP handler for a single transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} models.OperationResult "Transaction"
// @Failure 403 {object} models.OperationResult "Not a party"
// @Failure 404 {object} models.OperationResult "Transaction not found"
// @Router /transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		tx, err := svc.GetTransaction(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTransactionResult(tx))
	}
}

// NewHistoryHandler returns an HTTP handler for the caller's transaction history.
// @Summary Transaction history
// @Tags transactions
// @Produce json
// @Param type query string false "send, deposit, withdrawal, currency_exchange"
// @Param status query string false "pending, processing, completed, failed, cancelled"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} models.OperationResult "History page"
// @Failure 400 {object} models.OperationResult "Invalid filter"
// @Router /transactions [get]
// @Security BearerAuth
func NewHistoryHandler(svc TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		f, err := parseHistoryFilter(r.URL.Query())
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		f.UserID = userID

		page, err := svc.History(r.Context(), f)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewDataResult(page))
	}
}

// NewCancelTransactionHandler returns an HTTP handler that cancels an in-flight transaction.
// @Summary Cancel transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} models.OperationResult "Transaction"
// @Failure 403 {object} models.OperationResult "Not the initiator"
// @Failure 404 {object} models.OperationResult "Transaction not found"
// @Failure 409 {object} models.OperationResult "Cancellation window expired or already settled"
// @Router /transactions/{id}/cancel [post]
// @Security BearerAuth
func NewCancelTransactionHandler(svc TransactionCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		tx, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTransactionResult(tx))
	}
}

func parseHistoryFilter(q url.Values) (models.HistoryFilter, error) {
	f := models.HistoryFilter{
		Type:   models.TransactionType(q.Get("type")),
		Status: models.TransactionStatus(q.Get("status")),
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &f.Page}, {"limit", &f.Limit}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, fmt.Errorf("%w: %s must be a positive integer", models.ErrInvalidRequest, p.name)
		}
		*p.dst = n
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("%w: %s must be RFC3339", models.ErrInvalidRequest, p.name)
		}
		*p.dst = &t
	}

	return f, nil
}

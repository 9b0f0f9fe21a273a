package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// WalletManager defines the wallet operations used by the wallet handlers.
type WalletManager interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, primaryCurrency string) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uuid.UUID, currency string) (*models.BalanceResponse, error)
	SetPIN(ctx context.Context, userID uuid.UUID, pin string) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// NewCreateWalletHandler returns an HTTP handler that opens the caller's wallet.
// @Summary Create wallet
// @Description Creates the caller's wallet with the seed currencies. Repeated calls return the existing wallet.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.CreateWalletRequest false "Primary currency"
// @Success 201 {object} models.OperationResult "Wallet"
// @Failure 400 {object} models.OperationResult "Invalid request"
// @Failure 401 {object} models.OperationResult "Unauthorized"
// @Router /wallet [post]
// @Security BearerAuth
func NewCreateWalletHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.CreateWalletRequest
		if r.ContentLength != 0 {
			if err := decodeRequest(r, &req); err != nil {
				writeFailure(w, r, err)
				return
			}
		}

		wallet, err := svc.CreateWallet(r.Context(), userID, req.PrimaryCurrency)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewDataResult(wallet))
	}
}

// NewGetWalletHandler returns an HTTP handler for the caller's wallet with balances.
// @Summary Get wallet
// @Tags wallet
// @Produce json
// @Success 200 {object} models.OperationResult "Wallet"
// @Failure 401 {object} models.OperationResult "Unauthorized"
// @Failure 404 {object} models.OperationResult "Wallet not found"
// @Router /wallet [get]
// @Security BearerAuth
func NewGetWalletHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		wallet, err := svc.GetWallet(r.Context(), userID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewDataResult(wallet))
	}
}

// NewGetBalanceHandler returns an HTTP handler for a single currency slot.
// @Summary Get balance
// @Tags wallet
// @Produce json
// @Param currency path string true "ISO currency code"
// @Success 200 {object} models.OperationResult "Balance"
// @Failure 400 {object} models.OperationResult "Unsupported currency"
// @Failure 404 {object} models.OperationResult "Wallet not found"
// @Router /wallet/balance/{currency} [get]
// @Security BearerAuth
func NewGetBalanceHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), userID, chi.URLParam(r, "currency"))
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewDataResult(balance))
	}
}

// NewSetPINHandler returns an HTTP handler that sets the wallet PIN.
// @Summary Set wallet PIN
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.SetPINRequest true "PIN"
// @Success 200 {object} models.OperationResult "PIN set"
// @Failure 400 {object} models.OperationResult "Invalid PIN"
// @Failure 404 {object} models.OperationResult "Wallet not found"
// @Router /wallet/pin [put]
// @Security BearerAuth
func NewSetPINHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req models.SetPINRequest
		if err := decodeRequest(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}

		if err := svc.SetPIN(r.Context(), userID, req.PIN); err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewDataResult(map[string]string{"message": "PIN updated"}))
	}
}

// NewDeactivateWalletHandler returns an HTTP handler that freezes the caller's wallet.
// A deactivated wallet can no longer send or receive.
// @Summary Deactivate wallet
// @Tags wallet
// @Produce json
// @Success 200 {object} models.OperationResult "Wallet deactivated"
// @Failure 404 {object} models.OperationResult "Wallet not found"
// @Router /wallet [delete]
// @Security BearerAuth
func NewDeactivateWalletHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		if err := svc.Deactivate(r.Context(), userID); err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewDataResult(map[string]string{"message": "wallet deactivated"}))
	}
}

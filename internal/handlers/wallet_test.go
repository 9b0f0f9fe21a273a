package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateWalletHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		user           uuid.UUID
		setupMocks     func(m *MockWalletManager)
		expectedStatus int
	}{
		{
			name: "created with primary currency",
			body: `{"primary_currency":"EUR"}`,
			user: userID,
			setupMocks: func(m *MockWalletManager) {
				m.EXPECT().CreateWallet(gomock.Any(), userID, "EUR").
					Return(models.NewWallet(userID, "EUR", models.SeedCurrencies, timeNow()), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "created without body",
			user: userID,
			setupMocks: func(m *MockWalletManager) {
				m.EXPECT().CreateWallet(gomock.Any(), userID, "").
					Return(models.NewWallet(userID, "USD", models.SeedCurrencies, timeNow()), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid currency length",
			body:           `{"primary_currency":"EURO"}`,
			user:           userID,
			setupMocks:     func(m *MockWalletManager) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthenticated",
			user:           uuid.Nil,
			setupMocks:     func(m *MockWalletManager) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unsupported currency",
			body: `{"primary_currency":"XXX"}`,
			user: userID,
			setupMocks: func(m *MockWalletManager) {
				m.EXPECT().CreateWallet(gomock.Any(), userID, "XXX").
					Return(nil, models.ErrUnsupportedCurrency)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockWalletManager(ctrl)
			tt.setupMocks(svc)

			rr := serve(NewCreateWalletHandler(svc), http.MethodPost, "/wallet", "/wallet", tt.body, tt.user)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestGetWalletHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	svc := NewMockWalletManager(ctrl)

	svc.EXPECT().GetWallet(gomock.Any(), userID).
		Return(models.NewWallet(userID, "USD", models.SeedCurrencies, timeNow()), nil)
	rr := serve(NewGetWalletHandler(svc), http.MethodGet, "/wallet", "/wallet", "", userID)
	assert.Equal(t, http.StatusOK, rr.Code)
	res := decodeResult(t, rr)
	assert.Equal(t, models.ResultOK, res.Status)

	svc.EXPECT().GetWallet(gomock.Any(), userID).Return(nil, models.ErrWalletNotFound)
	rr = serve(NewGetWalletHandler(svc), http.MethodGet, "/wallet", "/wallet", "", userID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetBalanceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	svc := NewMockWalletManager(ctrl)

	bal := models.NewBalance("USD")
	bal.Available = decimal.NewFromInt(100)
	svc.EXPECT().GetBalance(gomock.Any(), userID, "USD").
		Return(&models.BalanceResponse{WalletID: uuid.NewString(), Balance: bal}, nil)

	rr := serve(NewGetBalanceHandler(svc), http.MethodGet, "/wallet/balance/{currency}", "/wallet/balance/USD", "", userID)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"available":"100"`)

	svc.EXPECT().GetBalance(gomock.Any(), userID, "XYZ").Return(nil, models.ErrUnsupportedCurrency)
	rr = serve(NewGetBalanceHandler(svc), http.MethodGet, "/wallet/balance/{currency}", "/wallet/balance/XYZ", "", userID)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSetPINHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(m *MockWalletManager)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"pin":"1234"}`,
			setupMocks: func(m *MockWalletManager) {
				m.EXPECT().SetPIN(gomock.Any(), userID, "1234").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non numeric",
			body:           `{"pin":"12a4"}`,
			setupMocks:     func(m *MockWalletManager) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too long",
			body:           `{"pin":"1234567"}`,
			setupMocks:     func(m *MockWalletManager) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"pin":"123456"}`,
			setupMocks: func(m *MockWalletManager) {
				m.EXPECT().SetPIN(gomock.Any(), userID, "123456").Return(errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockWalletManager(ctrl)
			tt.setupMocks(svc)

			rr := serve(NewSetPINHandler(svc), http.MethodPut, "/wallet/pin", "/wallet/pin", tt.body, userID)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestDeactivateWalletHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	svc := NewMockWalletManager(ctrl)

	svc.EXPECT().Deactivate(gomock.Any(), userID).Return(nil)
	rr := serve(NewDeactivateWalletHandler(svc), http.MethodDelete, "/wallet", "/wallet", "", userID)
	assert.Equal(t, http.StatusOK, rr.Code)

	svc.EXPECT().Deactivate(gomock.Any(), userID).Return(models.ErrWalletNotFound)
	rr = serve(NewDeactivateWalletHandler(svc), http.MethodDelete, "/wallet", "/wallet", "", userID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

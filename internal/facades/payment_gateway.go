package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// PaymentGatewayHTTP talks to a card payment gateway with a
// payment-intent REST API.
type PaymentGatewayHTTP struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewPaymentGatewayHTTP creates a gateway client with the given request timeout.
func NewPaymentGatewayHTTP(baseURL, apiKey string, timeout time.Duration) *PaymentGatewayHTTP {
	return &PaymentGatewayHTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type createIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Customer string `json:"customer"`
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// CreatePaymentIntent opens a deposit intent for amount in minor units.
func (g *PaymentGatewayHTTP) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, customerRef string) (*models.PaymentIntent, error) {
	minor, err := models.ToMinorUnits(amount, currency)
	if err != nil {
		return nil, err
	}
	body := createIntentRequest{
		Amount:   minor,
		Currency: strings.ToLower(currency),
		Customer: customerRef,
	}

	var resp intentResponse
	if err := g.do(ctx, http.MethodPost, "/v1/payment_intents", body, &resp); err != nil {
		return nil, err
	}

	logger.Log.Infow("payment intent created", "intent_id", resp.ID, "amount", amount, "currency", currency)
	return &models.PaymentIntent{
		ID:           resp.ID,
		ClientSecret: resp.ClientSecret,
		Status:       toPaymentStatus(resp.Status),
	}, nil
}

// ConfirmPayment confirms the intent and reports its final status.
func (g *PaymentGatewayHTTP) ConfirmPayment(ctx context.Context, intentID string) (models.PaymentStatus, error) {
	var resp intentResponse
	if err := g.do(ctx, http.MethodPost, "/v1/payment_intents/"+intentID+"/confirm", nil, &resp); err != nil {
		return "", err
	}

	status := toPaymentStatus(resp.Status)
	logger.Log.Infow("payment intent confirmed", "intent_id", intentID, "status", status)
	return status, nil
}

func toPaymentStatus(s string) models.PaymentStatus {
	switch s {
	case "succeeded":
		return models.PaymentSucceeded
	case "processing", "requires_confirmation", "requires_payment_method", "requires_action":
		return models.PaymentProcessing
	default:
		return models.PaymentFailed
	}
}

func (g *PaymentGatewayHTTP) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	res, err := g.client.Do(req)
	if err != nil {
		logger.Log.Errorw("payment gateway request failed", "path", path, "error", err)
		return fmt.Errorf("%w: payment gateway: %v", models.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		logger.Log.Errorw("payment gateway unavailable", "path", path, "status", res.StatusCode)
		return fmt.Errorf("%w: payment gateway answered %d", models.ErrUpstreamUnavailable, res.StatusCode)
	}
	if res.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		logger.Log.Errorw("payment gateway rejected request", "path", path, "status", res.StatusCode, "body", string(msg))
		return fmt.Errorf("%w: payment gateway rejected request with %d", models.ErrInvalidRequest, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

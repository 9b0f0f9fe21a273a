package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/shopspring/decimal"
)

const ratePrecision = 6

// ExchangeRatesGRPCFacade reads rate tables from the exchanger service over gRPC.
type ExchangeRatesGRPCFacade struct {
	client  pb.ExchangeServiceClient
	timeout time.Duration
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient, timeout time.Duration) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client, timeout: timeout}
}

// FetchRates returns the complete rate table relative to base. The exchanger
// publishes one table against its own anchor currency, so every rate is
// divided by the anchor-to-base rate.
func (f *ExchangeRatesGRPCFacade) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.client.GetExchangeRates(ctx, &pb.Empty{})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates via gRPC", "base", base, "error", err)
		return nil, err
	}

	anchor, ok := resp.Rates[base]
	if !ok || anchor <= 0 {
		return nil, fmt.Errorf("%w: exchanger has no rate for %s", models.ErrRateUnavailable, base)
	}
	baseRate := decimal.NewFromFloat32(anchor)

	rates := make(map[string]decimal.Decimal, len(resp.Rates))
	for currency, rate := range resp.Rates {
		if rate <= 0 {
			continue
		}
		rates[currency] = decimal.NewFromFloat32(rate).DivRound(baseRate, ratePrecision)
	}
	rates[base] = decimal.NewFromInt(1)

	logger.Log.Infow("exchange rates fetched", "base", base, "count", len(rates))
	return rates, nil
}

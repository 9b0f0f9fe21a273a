package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// ExchangeRateCacheRepository keeps rate snapshots in Redis, one key per base
// currency, expiring after the freshness window.
type ExchangeRateCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewExchangeRateCacheRepository creates a new repository instance with the given TTL
func NewExchangeRateCacheRepository(client *redis.Client, expiration time.Duration) *ExchangeRateCacheRepository {
	return &ExchangeRateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func rateKey(base string) string {
	return fmt.Sprintf("exchange_rates:%s", base)
}

// Get returns the cached snapshot for base, or nil when there is none.
func (r *ExchangeRateCacheRepository) Get(ctx context.Context, base string) (*models.ExchangeRateSnapshot, error) {
	key := rateKey(base)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("key", key, "result", "miss")
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow("key", key, "error", err)
		return nil, err
	}

	var snap models.ExchangeRateSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		logger.Log.Infow("key", key, "value", string(val), "error", err)
		return nil, err
	}

	logger.Log.Infow("key", key, "result", "hit", "fetched_at", snap.FetchedAt)
	return &snap, nil
}

// Set caches snap under its base currency.
func (r *ExchangeRateCacheRepository) Set(ctx context.Context, snap *models.ExchangeRateSnapshot) error {
	key := rateKey(snap.Base)

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, payload, r.exp).Err()
	logger.Log.Infow(
		"key", key,
		"rates", len(snap.Rates),
		"error", err,
	)
	return err
}

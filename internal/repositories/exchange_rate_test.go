package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateCacheRepository(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewExchangeRateCacheRepository(rdb, 5*time.Minute)

	t.Run("Set and Get snapshot", func(t *testing.T) {
		snap := &models.ExchangeRateSnapshot{
			Base:      "USD",
			Rates:     map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92"), "INR": decimal.RequireFromString("83.10")},
			FetchedAt: time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, repo.Set(ctx, snap))

		got, err := repo.Get(ctx, "USD")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "USD", got.Base)
		assert.True(t, snap.FetchedAt.Equal(got.FetchedAt))
		assert.True(t, decimal.RequireFromString("83.10").Equal(got.Rates["INR"]))
	})

	t.Run("Get missing key returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, "GBP")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Cached value expires", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, &models.ExchangeRateSnapshot{Base: "EUR", FetchedAt: time.Now()}))
		mr.FastForward(6 * time.Minute)

		got, err := repo.Get(ctx, "EUR")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Corrupt value is an error", func(t *testing.T) {
		require.NoError(t, mr.Set(rateKey("CHF"), "not-json"))
		_, err := repo.Get(ctx, "CHF")
		assert.Error(t, err)
	})
}

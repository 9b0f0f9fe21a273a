package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
)

// Options tunes distributed lock acquisition.
type Options struct {
	Expiry      time.Duration
	Tries       int
	RetryDelay  time.Duration
	DriftFactor float64
}

// DefaultOptions suits short ledger critical sections under contention.
func DefaultOptions() Options {
	return Options{
		Expiry:      10 * time.Second,
		Tries:       64,
		RetryDelay:  50 * time.Millisecond,
		DriftFactor: 0.01,
	}
}

// Redis is a Locker shared by every service instance through redsync.
type Redis struct {
	rs   *redsync.Redsync
	opts Options
}

// NewRedis builds a distributed locker on top of client.
func NewRedis(client *redis.Client, opts Options) *Redis {
	pool := goredis.NewPool(client)
	return &Redis{
		rs:   redsync.New(pool),
		opts: opts,
	}
}

// WithLock runs fn while holding the redsync mutex "lock:<key>".
func (l *Redis) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(
		"lock:"+key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
		redsync.WithDriftFactor(l.opts.DriftFactor),
	)

	if err := mutex.LockContext(ctx); err != nil {
		logger.Log.Errorw("failed to acquire lock", "key", key, "error", err)
		return fmt.Errorf("acquire lock %s: %w", key, err)
	}

	defer func() {
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			logger.Log.Errorw("failed to release lock", "key", key, "unlock_ok", ok, "error", err)
		}
	}()

	return fn(ctx)
}

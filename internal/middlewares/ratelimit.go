package middlewares

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// Counter counts hits for key inside a fixed window.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// hitScript increments the counter and arms the window in one round trip. A
// key left without a TTL gets one on the next hit.
var hitScript = redis.NewScript(`
	local n = redis.call("INCR", KEYS[1])
	if redis.call("PTTL", KEYS[1]) < 0 then
		redis.call("PEXPIRE", KEYS[1], ARGV[1])
	end
	return n
`)

// RedisCounter is a fixed-window Counter backed by an atomic INCR and PEXPIRE.
type RedisCounter struct {
	client redis.Cmdable
	prefix string
}

func NewRedisCounter(client redis.Cmdable, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

// Hit increments the counter for key and starts the window on the first hit.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.prefix + key

	n, err := hitScript.Run(ctx, c.client, []string{k}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("hit %s: %w", k, err)
	}
	return n, nil
}

// RateLimitMiddleware allows at most limit requests per caller per window.
// Callers are identified by user id, falling back to the remote address.
// Counter failures let the request through.
func RateLimitMiddleware(counter Counter, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := clientKey(r)
			n, err := counter.Hit(ctx, key, window)
			if err != nil {
				logger.Log.Warnw("rate limiter unavailable", "key", key, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - n
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > limit {
				logger.Log.Infow("rate limit exceeded", "key", key, "hits", n)
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests,
					fmt.Errorf("%w: at most %d requests per %s", models.ErrRateLimited, limit, window))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

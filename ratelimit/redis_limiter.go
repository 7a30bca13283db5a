package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// RedisLimiter enforces a fixed window of `window` length with at most
// `limit` requests per client. The counter key embeds the window index, so
// INCR alone is the whole admission check: Redis executes it atomically,
// which rules out two concurrent first-requests both seeing an empty window.
// The key's expiry is only cleanup; window boundaries come from the index.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration

	// now is swappable for window-rollover tests.
	now func() time.Time
}

func NewRedisLimiter(cfg *config.RateLimitConfig) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewExternalAPIError("rate limiter redis connection failed", err)
	}

	return &RedisLimiter{
		client: client,
		limit:  cfg.Requests,
		window: cfg.Window(),
		now:    time.Now,
	}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	key := l.windowKey(clientKey)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.NewExternalAPIError("rate limiter increment failed", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

func (l *RedisLimiter) windowKey(clientKey string) string {
	windowIndex := l.now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", clientKey, windowIndex)
}

// Close releases the underlying Redis connection.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

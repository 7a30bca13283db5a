package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// RedisCache is the distributed variant, shared across instances. TTL expiry
// is handled natively by Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.DialTimeout)*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("redis cache connection failed", err)
	}

	slog.Info("Redis cache connected", "addr", cfg.Addr)

	return &RedisCache{client: client}, nil
}

// Get treats every backend failure as a miss so that a Redis outage degrades
// to direct upstream fetches instead of failing requests.
func (r *RedisCache) Get(ctx context.Context, key string) (*models.WeatherSnapshot, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis get error", "error", err, "key", key)
		}
		return nil, false
	}

	var snapshot models.WeatherSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		slog.Error("Redis unmarshal error", "error", err, "key", key)
		return nil, false
	}

	return &snapshot, true
}

// Set is best-effort; failures are logged and swallowed.
func (r *RedisCache) Set(ctx context.Context, key string, value *models.WeatherSnapshot, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("Redis marshal error", "error", err, "key", key)
		return
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("Redis set error", "error", err, "key", key)
	}
}

// Close releases the underlying Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

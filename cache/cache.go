// Package cache provides the pluggable snapshot cache: disabled, in-process
// memory, or Redis. All variants are fail-soft: a backend error on Get is a
// miss, an error on Set is logged and swallowed, so a cache outage never
// fails a request.
package cache

import (
	"context"
	"time"

	"github.com/kostiantyn-povnych/weather-service/models"
)

// Cache stores weather snapshots under normalized location keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) (*models.WeatherSnapshot, bool)
	Set(ctx context.Context, key string, value *models.WeatherSnapshot, ttl time.Duration)
}

// NoopCache is the disabled variant: every lookup misses, every store is
// dropped.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) Get(ctx context.Context, key string) (*models.WeatherSnapshot, bool) {
	return nil, false
}

func (c *NoopCache) Set(ctx context.Context, key string, value *models.WeatherSnapshot, ttl time.Duration) {
}

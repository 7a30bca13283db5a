package cache

import (
	"context"
	"io"
	"time"

	"github.com/kostiantyn-povnych/weather-service/metrics"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// InstrumentedCache wraps a backend with prometheus hit/miss/latency metrics.
type InstrumentedCache struct {
	backend Cache
	metrics *metrics.CacheMetrics
}

func NewInstrumentedCache(backend Cache, cacheType string) *InstrumentedCache {
	return &InstrumentedCache{
		backend: backend,
		metrics: metrics.NewCacheMetrics(cacheType),
	}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) (*models.WeatherSnapshot, bool) {
	start := time.Now()
	snapshot, found := c.backend.Get(ctx, key)
	c.metrics.RecordLatency("get", time.Since(start).Seconds())

	if found {
		c.metrics.RecordHit()
	} else {
		c.metrics.RecordMiss()
	}
	return snapshot, found
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value *models.WeatherSnapshot, ttl time.Duration) {
	start := time.Now()
	c.backend.Set(ctx, key, value, ttl)
	c.metrics.RecordLatency("set", time.Since(start).Seconds())
}

// Stats exposes the counters for debugging endpoints and tests.
func (c *InstrumentedCache) Stats() metrics.Stats {
	return c.metrics.GetStats()
}

// Close releases the backend when it holds resources.
func (c *InstrumentedCache) Close() error {
	if closer, ok := c.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

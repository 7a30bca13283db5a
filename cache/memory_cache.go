package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kostiantyn-povnych/weather-service/models"
)

type memoryEntry struct {
	snapshot  models.WeatherSnapshot
	expiresAt time.Time
}

// MemoryCache is the in-process variant. It has no native expiry, so Get
// checks timestamps on read and a background sweep removes stale entries.
// Single-instance deployments only; contents are lost on restart.
type MemoryCache struct {
	mu     sync.RWMutex
	data   map[string]memoryEntry
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data:   make(map[string]memoryEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go c.sweep()
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.WeatherSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		return nil, false
	}

	snapshot := entry.snapshot
	return &snapshot, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value *models.WeatherSnapshot, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = memoryEntry{
		snapshot:  *value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Stop terminates the background sweep goroutine.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}

func (c *MemoryCache) Close() error {
	c.Stop()
	return nil
}

func (c *MemoryCache) sweep() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.expiresAt) {
			delete(c.data, key)
		}
	}
}

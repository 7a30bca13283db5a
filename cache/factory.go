package cache

import (
	"fmt"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// NewFromConfig selects the cache backend once at startup. The disabled
// variant is not instrumented; counting misses on a cache that cannot hit
// would only skew the ratio.
func NewFromConfig(cfg *config.CacheConfig) (Cache, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeDisabled:
		return NewNoopCache(), nil
	case config.CacheTypeMemory:
		return NewInstrumentedCache(NewMemoryCache(), config.CacheTypeMemory), nil
	case config.CacheTypeRedis:
		backend, err := NewRedisCache(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewInstrumentedCache(backend, config.CacheTypeRedis), nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}

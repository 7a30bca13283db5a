package ratelimit

import (
	"fmt"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// NewFromConfig selects the limiter backend once at startup.
func NewFromConfig(cfg *config.RateLimitConfig) (Limiter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("rate limit config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.RateLimitTypeDisabled:
		return NewNoopLimiter(), nil
	case config.RateLimitTypeRedis:
		return NewRedisLimiter(cfg)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported rate limit type: %s", cfg.Type), nil)
	}
}

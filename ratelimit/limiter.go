// Package ratelimit provides the pluggable admission check: disabled, or a
// Redis-backed fixed window shared across instances. Backend errors are
// returned to the caller, which fails open.
package ratelimit

import "context"

// Limiter decides whether a client's request is admitted.
type Limiter interface {
	Allow(ctx context.Context, clientKey string) (bool, error)
}

// NoopLimiter is the disabled variant: every request is admitted.
type NoopLimiter struct{}

func NewNoopLimiter() *NoopLimiter {
	return &NoopLimiter{}
}

func (l *NoopLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	return true, nil
}

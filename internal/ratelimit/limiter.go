package ratelimit

import (
	"context"
	"strings"
)

// Limiter decides whether another attempt identified by key may proceed.
// Implementations are safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Key builds the throttle key for an attempt from the client address and
// the (already normalized) email it targets.
func Key(action, clientIP, email string) string {
	return strings.Join([]string{action, clientIP, strings.ToLower(email)}, ":")
}

// Unlimited allows every attempt. Used when throttling is disabled.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) {
	return true, nil
}

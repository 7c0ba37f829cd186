// Package cache holds the short-lived security state of the auth flow: revoked refresh tokens and
// failed-login counters. Redis backs it in deployment, an in-process store otherwise.
package cache

import (
	"context"
	"time"
)

// TokenStore remembers revoked token ids until ttl elapses
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginLimiter counts failed logins per key inside a fixed window
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted for key
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Pinger is implemented by stores with a remote backend
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	keyPrefix        = "together:"
	revokedKeyPrefix = keyPrefix + "revoked:"
	loginKeyPrefix   = keyPrefix + "login_attempts:"
)

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

func loginKey(key string) string {
	return loginKeyPrefix + key
}

package cache

import (
	"context"
	"time"
)

// TokenBlacklist remembers revoked session token ids until they expire.
//
//go:generate mockery --name TokenBlacklist --dir . --output ../../../../../mocks/cache --outpkg mocks --filename TokenBlacklist.go
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

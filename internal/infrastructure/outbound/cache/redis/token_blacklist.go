package redis

import (
	"context"
	"log/slog"
	"time"

	ports "notes-blog-service/internal/domain/ports/output"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenBlacklist stores revoked token ids with a TTL equal to the token's remaining lifetime.
type TokenBlacklist struct {
	client *Client
	log    ports.Logger
}

func NewTokenBlacklist(client *Client, log ports.Logger) *TokenBlacklist {
	return &TokenBlacklist{
		client: client,
		log:    log,
	}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	revokedUntil := time.Now().Add(ttl).Unix()
	if err := b.client.SetJSON(ctx, revokedTokenKeyPrefix+tokenID, revokedUntil, ttl); err != nil {
		return err
	}
	b.log.Debug("Token revoked", slog.String("token_id", tokenID), slog.Duration("ttl", ttl))
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return b.client.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}

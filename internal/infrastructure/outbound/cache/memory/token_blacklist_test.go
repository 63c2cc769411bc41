package memory_cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBlacklist(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewTokenBlacklist()
	b.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "a", time.Minute))
	require.NoError(t, b.Revoke(ctx, "expired", -time.Second))

	revoked, err := b.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = b.IsRevoked(ctx, "expired")
	assert.False(t, revoked)

	clock = clock.Add(2 * time.Minute)
	revoked, _ = b.IsRevoked(ctx, "a")
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "b", time.Minute))
	assert.NotContains(t, b.revoked, "a", "expired entries are pruned on revoke")
}

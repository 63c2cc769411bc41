package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/infrastructure/config"
	"notes-blog-service/internal/infrastructure/logger"
	"notes-blog-service/internal/infrastructure/outbound/cache/redis"
)

func setupRedis(t *testing.T) (*redis.Client, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	port, err := strconv.Atoi(m.Port())
	require.NoError(t, err)

	client, err := redis.NewClient(config.Redis{Address: m.Host(), Port: port, PoolSize: 2}, logger.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, m
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := redis.NewClient(config.Redis{Address: "127.0.0.1", Port: 1}, logger.New("test"))
	assert.Error(t, err)
}

func TestPostCache_SetGetDelete(t *testing.T) {
	client, m := setupRedis(t)
	postCache := redis.NewPostCache(client, logger.New("test"))
	ctx := context.Background()

	_, err := postCache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	updated := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	post := &model.Post{
		ID:          1,
		Title:       "cached",
		Body:        "body",
		Author:      "alice",
		AuthorEmail: "a@b.io",
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   &updated,
	}
	require.NoError(t, postCache.SetPost(ctx, post, 0))
	assert.True(t, m.Exists("post:1"))

	got, err := postCache.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, updated.Equal(*got.UpdatedAt))

	require.NoError(t, postCache.DeletePost(ctx, 1))
	_, err = postCache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	assert.Error(t, postCache.SetPost(ctx, nil, 0))
}

func TestPostCache_InvalidationBeatsStaleRefill(t *testing.T) {
	client, m := setupRedis(t)
	postCache := redis.NewPostCache(client, logger.New("test"))
	ctx := context.Background()

	version, err := postCache.Version(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, postCache.DeletePost(ctx, 5))
	assert.True(t, m.Exists("post_version:5"))

	require.NoError(t, postCache.SetPost(ctx, &model.Post{ID: 5, Title: "old"}, version))
	assert.False(t, m.Exists("post:5"), "a refill read before the invalidation is dropped")

	current, err := postCache.Version(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)

	require.NoError(t, postCache.SetPost(ctx, &model.Post{ID: 5, Title: "new"}, current))
	got, err := postCache.GetPost(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	require.NoError(t, postCache.DeletePost(ctx, 5))
	assert.False(t, m.Exists("post:5"))
	current, err = postCache.Version(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
}

func TestPostCache_Expires(t *testing.T) {
	client, m := setupRedis(t)
	postCache := redis.NewPostCache(client, logger.New("test"))
	ctx := context.Background()

	require.NoError(t, postCache.SetPost(ctx, &model.Post{ID: 7, Title: "short lived"}, 0))
	m.FastForward(31 * time.Minute)

	_, err := postCache.GetPost(ctx, 7)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestPostCache_CorruptValue(t *testing.T) {
	client, m := setupRedis(t)
	postCache := redis.NewPostCache(client, logger.New("test"))

	require.NoError(t, m.Set("post:3", "{not json"))
	_, err := postCache.GetPost(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestTokenBlacklist_RevokeUntilExpiry(t *testing.T) {
	client, m := setupRedis(t)
	blacklist := redis.NewTokenBlacklist(client, logger.New("test"))
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", 2*time.Second))
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	m.FastForward(3 * time.Second)
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenBlacklist_ExpiredTokenIsNoop(t *testing.T) {
	client, m := setupRedis(t)
	blacklist := redis.NewTokenBlacklist(client, logger.New("test"))

	require.NoError(t, blacklist.Revoke(context.Background(), "old", -time.Second))
	assert.False(t, m.Exists("revoked_token:old"))
}

func TestClient_KeyNamespace(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	port, err := strconv.Atoi(m.Port())
	require.NoError(t, err)

	client, err := redis.NewClient(config.Redis{Address: m.Host(), Port: port, KeyPrefix: "notes:"}, logger.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.SetJSON(ctx, "k", map[string]int{"n": 1}, time.Minute))
	assert.True(t, m.Exists("notes:k"))
	assert.False(t, m.Exists("k"))

	var got map[string]int
	require.NoError(t, client.GetJSON(ctx, "k", &got))
	assert.Equal(t, 1, got["n"])

	n, err := client.Del(ctx, "k", "absent")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

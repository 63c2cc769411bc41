package minio_store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/infrastructure/config"
	"notes-blog-service/internal/infrastructure/logger"
	"notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	minio_store "notes-blog-service/internal/infrastructure/outbound/store/minio"
)

// Requires a running MinIO; set NOTES_TEST_MINIO_ENDPOINT to enable.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("NOTES_TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("NOTES_TEST_MINIO_ENDPOINT not set")
	}
	ctx := context.Background()

	s, err := minio_store.NewStore(ctx, config.MinIO{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("NOTES_TEST_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("NOTES_TEST_MINIO_SECRET_KEY"),
		Bucket:    "notes-test",
		Prefix:    t.Name() + "/",
	}, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	require.NoError(t, err)

	missing := model.NewCollection[*model.User]()
	require.NoError(t, s.Load(ctx, "users", missing))
	assert.Equal(t, 0, missing.Len())

	users := model.NewCollection[*model.User]()
	users.Put("a@b.io", &model.User{Email: "a@b.io", Username: "alice"})
	require.NoError(t, s.Save(ctx, "users", users))

	loaded := model.NewCollection[*model.User]()
	require.NoError(t, s.Load(ctx, "users", loaded))
	assert.True(t, loaded.Has("a@b.io"))
}

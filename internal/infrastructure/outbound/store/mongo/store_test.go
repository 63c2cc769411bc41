package mongo_store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/infrastructure/logger"
	"notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	mongo_store "notes-blog-service/internal/infrastructure/outbound/store/mongo"
)

// Requires a running MongoDB; set NOTES_TEST_MONGO_URI to enable.
func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("NOTES_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NOTES_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	client, err := mongo_store.Connect(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	col := client.Database("notes_test").Collection("collections")
	defer col.Drop(ctx)

	s := mongo_store.NewStore(col, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	empty := model.NewCollection[*model.Post]()
	require.NoError(t, s.Load(ctx, "posts", empty))
	assert.Equal(t, 0, empty.Len())

	posts := model.NewCollection[*model.Post]()
	posts.Put("1", &model.Post{ID: 1, Title: "from mongo"})
	require.NoError(t, s.Save(ctx, "posts", posts))

	loaded := model.NewCollection[*model.Post]()
	require.NoError(t, s.Load(ctx, "posts", loaded))
	p, ok := loaded.Get("1")
	require.True(t, ok)
	assert.Equal(t, "from mongo", p.Title)
}

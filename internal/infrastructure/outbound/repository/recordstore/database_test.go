package recordstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/domain/ports/output/store"
	"notes-blog-service/internal/infrastructure/logger"
	"notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	"notes-blog-service/internal/infrastructure/outbound/repository/recordstore"
	memory_store "notes-blog-service/internal/infrastructure/outbound/store/memory"
	"notes-blog-service/mocks"
)

func setupDatabase(t *testing.T) (*recordstore.Database, store.RecordStore) {
	t.Helper()
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	s := memory_store.NewStore(log, metrics)
	return recordstore.NewDatabase(s, log, metrics), s
}

func createPost(t *testing.T, db *recordstore.Database, title, body, email string) *model.Post {
	t.Helper()
	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	id, err := tx.IDAllocator().NextPostID(ctx)
	require.NoError(t, err)
	created, err := tx.PostRepository().Create(ctx, &model.Post{
		ID:          id,
		Title:       title,
		Body:        body,
		Author:      "author",
		AuthorEmail: email,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return created
}

func TestTransaction_CommitPersists(t *testing.T) {
	db, s := setupDatabase(t)
	ctx := context.Background()

	p := createPost(t, db, "hello", "world", "a@b.io")
	assert.Equal(t, int64(1), p.ID)

	posts := model.NewCollection[*model.Post]()
	require.NoError(t, s.Load(ctx, store.CollectionPosts, posts))
	assert.Equal(t, []string{"1"}, posts.Keys())

	counters := map[string]int64{}
	require.NoError(t, s.Load(ctx, store.CollectionCounters, &counters))
	assert.Equal(t, int64(1), counters["post_id"])
}

func TestTransaction_RollbackDiscards(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.PostRepository().Create(ctx, &model.Post{ID: 5, Title: "draft", AuthorEmail: "a@b.io"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	_, err = db.PostRepository().GetByID(ctx, 5)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	assert.ErrorIs(t, tx.Commit(ctx), custom_errors.ErrTxClosed)
	assert.ErrorIs(t, tx.Rollback(ctx), custom_errors.ErrTxClosed)
}

func TestAllocator_NeverReusesDeletedIDs(t *testing.T) {
	db, s := setupDatabase(t)
	ctx := context.Background()

	createPost(t, db, "one", "", "a@b.io")
	createPost(t, db, "two", "", "a@b.io")
	third := createPost(t, db, "three", "", "a@b.io")
	require.NoError(t, db.PostRepository().Delete(ctx, third.ID))

	reopened := recordstore.NewDatabase(s, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	next := createPost(t, reopened, "four", "", "a@b.io")
	assert.Equal(t, int64(4), next.ID)
}

func TestAllocator_SkipsExistingKeysWithoutCounter(t *testing.T) {
	db, s := setupDatabase(t)
	ctx := context.Background()

	seeded := model.NewCollection[*model.Post]()
	seeded.Put("1", &model.Post{ID: 1, Title: "legacy"})
	seeded.Put("2", &model.Post{ID: 2, Title: "legacy"})
	require.NoError(t, s.Save(ctx, store.CollectionPosts, seeded))

	p := createPost(t, db, "new", "", "a@b.io")
	assert.Equal(t, int64(3), p.ID)
}

func TestAllocator_ConcurrentTransactionsGetDistinctIDs(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, err := db.Begin(ctx)
			if !assert.NoError(t, err) {
				return
			}
			id, err := tx.IDAllocator().NextPostID(ctx)
			if !assert.NoError(t, err) {
				_ = tx.Rollback(ctx)
				return
			}
			_, err = tx.PostRepository().Create(ctx, &model.Post{ID: id, Title: fmt.Sprintf("post %d", i), AuthorEmail: "a@b.io"})
			if !assert.NoError(t, err) {
				_ = tx.Rollback(ctx)
				return
			}
			assert.NoError(t, tx.Commit(ctx))
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	_, total, err := db.PostRepository().List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, workers, total)
}

func TestPostRepository_ListAndSearch(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		createPost(t, db, fmt.Sprintf("Title %d", i), "body text", "a@b.io")
	}
	createPost(t, db, "Other", "Go is fun", "c@d.io")

	repo := db.PostRepository()

	page, total, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)

	tail, _, err := repo.List(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "Other", tail[0].Title)

	beyond, _, err := repo.List(ctx, 100, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	tests := []struct {
		name    string
		keyword string
		want    int
	}{
		{name: "title match", keyword: "Title", want: 5},
		{name: "body match", keyword: "Go", want: 1},
		{name: "case sensitive", keyword: "title", want: 0},
		{name: "empty matches all", keyword: "", want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.keyword)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}

	byAuthor, err := repo.GetByAuthor(ctx, "c@d.io")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, int64(6), byAuthor[0].ID)
}

func TestPostRepository_UpdateKeepsPosition(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()

	first := createPost(t, db, "first", "", "a@b.io")
	createPost(t, db, "second", "", "a@b.io")

	now := time.Now().UTC()
	first.Title = "first edited"
	first.UpdatedAt = &now
	_, err := db.PostRepository().Update(ctx, first)
	require.NoError(t, err)

	all, _, err := db.PostRepository().List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first edited", all[0].Title)
	require.NotNil(t, all[0].UpdatedAt)

	_, err = db.PostRepository().Update(ctx, &model.Post{ID: 99, Title: "x"})
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	assert.ErrorIs(t, db.PostRepository().Delete(ctx, 99), custom_errors.ErrPostNotFound)
}

func TestPostRepository_ReturnedPostsAreCopies(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.PostRepository().Create(ctx, &model.Post{ID: 1, Title: "original"})
	require.NoError(t, err)
	got, err := tx.PostRepository().GetByID(ctx, 1)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := tx.PostRepository().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db, _ := setupDatabase(t)
	ctx := context.Background()
	repo := db.UserRepository()

	user := &model.User{Email: "a@b.io", Username: "alice", PhoneNumber: "123456", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.ErrorIs(t, repo.Create(ctx, user), custom_errors.ErrUserExists)

	got, err := repo.GetByEmail(ctx, "a@b.io")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByEmail(ctx, "A@b.io")
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}

type failingStore struct {
	store.RecordStore
	failCollection string
}

func (f *failingStore) Save(ctx context.Context, collection string, src any) error {
	if collection == f.failCollection {
		return fmt.Errorf("%w: disk full", custom_errors.ErrStorage)
	}
	return f.RecordStore.Save(ctx, collection, src)
}

func TestTransaction_FailedCommitKeepsPreviousState(t *testing.T) {
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	inner := memory_store.NewStore(log, metrics)
	ctx := context.Background()

	healthy := recordstore.NewDatabase(inner, log, metrics)
	createPost(t, healthy, "kept", "", "a@b.io")

	broken := recordstore.NewDatabase(&failingStore{RecordStore: inner, failCollection: store.CollectionPosts}, log, metrics)
	tx, err := broken.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.PostRepository().Delete(ctx, 1))
	err = tx.Commit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, custom_errors.ErrStorage))

	got, err := healthy.PostRepository().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)

	// the lock was released despite the failure
	tx, err = broken.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
}

func TestDatabase_StoreFailures(t *testing.T) {
	errDisk := fmt.Errorf("%w: disk full", custom_errors.ErrStorage)
	ctx := context.Background()

	t.Run("load failure surfaces from reads", func(t *testing.T) {
		s := mocks.NewRecordStore(t)
		s.On("Load", mock.Anything, store.CollectionPosts, mock.Anything).Return(errDisk)
		db := recordstore.NewDatabase(s, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

		_, err := db.PostRepository().GetByID(ctx, 1)
		assert.ErrorIs(t, err, custom_errors.ErrStorage)
	})

	t.Run("save failure fails commit and releases the lock", func(t *testing.T) {
		s := mocks.NewRecordStore(t)
		s.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		s.On("Save", mock.Anything, store.CollectionCounters, mock.Anything).Return(nil).Once()
		s.On("Save", mock.Anything, store.CollectionPosts, mock.Anything).Return(errDisk).Once()
		db := recordstore.NewDatabase(s, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

		tx, err := db.Begin(ctx)
		require.NoError(t, err)
		id, err := tx.IDAllocator().NextPostID(ctx)
		require.NoError(t, err)
		_, err = tx.PostRepository().Create(ctx, &model.Post{ID: id, Title: "t", AuthorEmail: "a@b.io"})
		require.NoError(t, err)

		assert.ErrorIs(t, tx.Commit(ctx), custom_errors.ErrStorage)
		assert.ErrorIs(t, tx.Rollback(ctx), custom_errors.ErrTxClosed)

		next, err := db.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, next.Rollback(ctx))
	})
}

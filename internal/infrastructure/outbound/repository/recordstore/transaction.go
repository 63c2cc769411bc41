package recordstore

import (
	"context"
	"log/slog"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/domain/ports/output/ids"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	"notes-blog-service/internal/domain/ports/output/store"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
)

const postIDCounter = "post_id"

// Transaction loads each collection at most once, keeps mutations in memory
// and writes the changed collections back on Commit.
type Transaction struct {
	db       *Database
	readOnly bool
	closed   bool

	posts    *model.Collection[*model.Post]
	users    *model.Collection[*model.User]
	counters map[string]int64

	dirtyPosts    bool
	dirtyUsers    bool
	dirtyCounters bool
}

func newTransaction(db *Database, readOnly bool) *Transaction {
	return &Transaction{db: db, readOnly: readOnly}
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return &PostRepository{db: t.db, tx: t}
}

func (t *Transaction) UserRepository() user_repository.Repository {
	return &UserRepository{db: t.db, tx: t}
}

func (t *Transaction) IDAllocator() ids.Allocator {
	return &CounterAllocator{tx: t}
}

func (t *Transaction) loadPosts(ctx context.Context) (*model.Collection[*model.Post], error) {
	if t.closed {
		return nil, custom_errors.ErrTxClosed
	}
	if t.posts == nil {
		posts := model.NewCollection[*model.Post]()
		if err := t.db.store.Load(ctx, store.CollectionPosts, posts); err != nil {
			return nil, err
		}
		t.posts = posts
	}
	return t.posts, nil
}

func (t *Transaction) loadUsers(ctx context.Context) (*model.Collection[*model.User], error) {
	if t.closed {
		return nil, custom_errors.ErrTxClosed
	}
	if t.users == nil {
		users := model.NewCollection[*model.User]()
		if err := t.db.store.Load(ctx, store.CollectionUsers, users); err != nil {
			return nil, err
		}
		t.users = users
	}
	return t.users, nil
}

func (t *Transaction) loadCounters(ctx context.Context) (map[string]int64, error) {
	if t.closed {
		return nil, custom_errors.ErrTxClosed
	}
	if t.counters == nil {
		counters := make(map[string]int64)
		if err := t.db.store.Load(ctx, store.CollectionCounters, &counters); err != nil {
			return nil, err
		}
		t.counters = counters
	}
	return t.counters, nil
}

func (t *Transaction) checkWritable() error {
	if t.closed {
		return custom_errors.ErrTxClosed
	}
	if t.readOnly {
		return custom_errors.ErrReadOnlyTx
	}
	return nil
}

// Commit saves the counters before the records that use them, so a failure
// between the two saves can only leave a gap in the issued ids.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.closed {
		return custom_errors.ErrTxClosed
	}
	defer t.release()
	if t.readOnly {
		return nil
	}

	if t.dirtyCounters {
		if err := t.db.store.Save(ctx, store.CollectionCounters, t.counters); err != nil {
			t.db.log.Error("Failed to save counters", slog.String("error", err.Error()))
			return err
		}
	}
	if t.dirtyPosts {
		if err := t.db.store.Save(ctx, store.CollectionPosts, t.posts); err != nil {
			t.db.log.Error("Failed to save posts", slog.String("error", err.Error()))
			return err
		}
	}
	if t.dirtyUsers {
		if err := t.db.store.Save(ctx, store.CollectionUsers, t.users); err != nil {
			t.db.log.Error("Failed to save users", slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.closed {
		return custom_errors.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *Transaction) release() {
	if t.closed {
		return
	}
	t.closed = true
	t.posts, t.users, t.counters = nil, nil, nil
	if t.readOnly {
		t.db.mu.RUnlock()
	} else {
		t.db.mu.Unlock()
	}
}

package recordstore

import (
	"context"
	"sync"

	ports "notes-blog-service/internal/domain/ports/output"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	"notes-blog-service/internal/domain/ports/output/store"
	"notes-blog-service/internal/domain/ports/output/uow"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
)

// Database serializes access to the collections of one RecordStore.
// Transactions hold the write lock from Begin until Commit or Rollback;
// reads outside a transaction take the read lock for one snapshot.
type Database struct {
	store   store.RecordStore
	log     ports.Logger
	metrics ports.MetricsProvider
	mu      sync.RWMutex
}

func NewDatabase(s store.RecordStore, log ports.Logger, metrics ports.MetricsProvider) *Database {
	return &Database{store: s, log: log, metrics: metrics}
}

func (d *Database) Begin(ctx context.Context) (uow.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	return newTransaction(d, false), nil
}

func (d *Database) snapshot() *Transaction {
	d.mu.RLock()
	return newTransaction(d, true)
}

// PostRepository returns a repository that runs each call in its own snapshot
// or, for mutations, its own transaction.
func (d *Database) PostRepository() post_repository.Repository {
	return &PostRepository{db: d}
}

func (d *Database) UserRepository() user_repository.Repository {
	return &UserRepository{db: d}
}

func (d *Database) read(ctx context.Context, tx *Transaction, fn func(*Transaction) error) error {
	if tx != nil {
		return fn(tx)
	}
	s := d.snapshot()
	defer s.release()
	return fn(s)
}

func (d *Database) write(ctx context.Context, tx *Transaction, fn func(*Transaction) error) error {
	if tx != nil {
		return fn(tx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	own := newTransaction(d, false)
	if err := fn(own); err != nil {
		_ = own.Rollback(ctx)
		return err
	}
	return own.Commit(ctx)
}

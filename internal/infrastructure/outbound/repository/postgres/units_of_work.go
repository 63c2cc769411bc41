package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/ids"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	"notes-blog-service/internal/domain/ports/output/uow"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
	post_repository_postgres "notes-blog-service/internal/infrastructure/outbound/repository/post/postgres"
	"notes-blog-service/internal/infrastructure/outbound/repository/postgres/db"
	user_repository_postgres "notes-blog-service/internal/infrastructure/outbound/repository/user/postgres"
)

type PostgresUnitOfWork struct {
	pool    *pgxpool.Pool
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPostgresUOW(pool *pgxpool.Pool, log ports.Logger, metrics ports.MetricsProvider) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log, metrics: metrics}
}

func (u *PostgresUnitOfWork) Begin(ctx context.Context) (uow.Transaction, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: error beginning transaction: %w", custom_errors.ErrStorage, err)
	}
	return &PostgresTransaction{tx: tx, log: u.log, metrics: u.metrics}, nil
}

// PostRepository returns a repository bound to the pool, outside any transaction.
func (u *PostgresUnitOfWork) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(u.pool, u.log, u.metrics, false)
}

func (u *PostgresUnitOfWork) UserRepository() user_repository.Repository {
	return user_repository_postgres.NewUserRepository(u.pool, u.log, u.metrics)
}

type PostgresTransaction struct {
	tx      pgx.Tx
	log     ports.Logger
	metrics ports.MetricsProvider
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return custom_errors.ErrTxClosed
		}
		return fmt.Errorf("%w: commit: %w", custom_errors.ErrStorage, err)
	}
	return nil
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return custom_errors.ErrTxClosed
		}
		return fmt.Errorf("%w: rollback: %w", custom_errors.ErrStorage, err)
	}
	return nil
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log, t.metrics, true)
}

func (t *PostgresTransaction) UserRepository() user_repository.Repository {
	return user_repository_postgres.NewUserRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) IDAllocator() ids.Allocator {
	return NewCounterAllocator(t.tx, t.log, t.metrics)
}

// CounterAllocator advances the post_id row of id_counters. The UPDATE holds the
// row lock until the surrounding transaction ends.
type CounterAllocator struct {
	db      db.PgDB
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewCounterAllocator(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CounterAllocator {
	return &CounterAllocator{db: db, log: log, metrics: metrics}
}

func (a *CounterAllocator) NextPostID(ctx context.Context) (int64, error) {
	start := time.Now()
	for {
		var next int64
		err := a.db.QueryRow(ctx,
			`UPDATE id_counters SET value = value + 1 WHERE name = 'post_id' RETURNING value`,
		).Scan(&next)
		if err != nil {
			a.metrics.IncrementDatabaseQueries("counter_next", false)
			a.metrics.RecordDatabaseQueryDuration("counter_next", time.Since(start))
			a.log.Error("Error advancing post id counter", slog.String("error", err.Error()))
			return 0, fmt.Errorf("%w: advance post id counter: %w", custom_errors.ErrStorage, err)
		}

		var taken bool
		err = a.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = @id)`, pgx.NamedArgs{"id": next}).Scan(&taken)
		if err != nil {
			a.metrics.IncrementDatabaseQueries("counter_next", false)
			a.metrics.RecordDatabaseQueryDuration("counter_next", time.Since(start))
			a.log.Error("Error checking post id", slog.Int64("id", next), slog.String("error", err.Error()))
			return 0, fmt.Errorf("%w: check post id: %w", custom_errors.ErrStorage, err)
		}
		if !taken {
			a.metrics.IncrementDatabaseQueries("counter_next", true)
			a.metrics.RecordDatabaseQueryDuration("counter_next", time.Since(start))
			a.log.Debug("Allocated post id", slog.Int64("id", next))
			return next, nil
		}
		a.log.Warn("Skipping post id already in use", slog.Int64("id", next))
	}
}

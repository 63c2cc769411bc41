package user_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/outbound/repository/postgres/db"
)

type UserRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewUserRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *UserRepository {
	return &UserRepository{db: db, log: log, metrics: metrics}
}

func (u *UserRepository) observe(queryType string, start time.Time, success bool) {
	u.metrics.IncrementDatabaseQueries(queryType, success)
	u.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) error {
	start := time.Now()
	u.log.Debug("Creating new user", slog.String("email", user.Email))

	args := pgx.NamedArgs{
		"email":         user.Email,
		"phone_number":  user.PhoneNumber,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    pgtype.Timestamptz{Time: user.CreatedAt, Valid: true},
	}
	query := `
		INSERT INTO users (email, phone_number, username, password_hash, created_at)
		VALUES (@email, @phone_number, @username, @password_hash, @created_at)
		ON CONFLICT (email) DO NOTHING`

	result, err := u.db.Exec(ctx, query, args)
	if err != nil {
		u.observe("user_create", start, false)
		u.log.Error("Error creating user", slog.String("email", user.Email), slog.String("error", err.Error()))
		return fmt.Errorf("%w: create user: %w", custom_errors.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		u.observe("user_create", start, true)
		u.log.Debug("User already exists", slog.String("email", user.Email))
		return custom_errors.ErrUserExists
	}

	u.observe("user_create", start, true)
	u.log.Debug("Successfully created user", slog.String("email", user.Email))
	return nil
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	start := time.Now()

	query := `SELECT email, phone_number, username, password_hash, created_at FROM users WHERE email = @email`
	var user model.User
	err := u.db.QueryRow(ctx, query, pgx.NamedArgs{"email": email}).Scan(
		&user.Email,
		&user.PhoneNumber,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			u.observe("user_get_by_email", start, true)
			return nil, custom_errors.ErrUserNotFound
		}
		u.observe("user_get_by_email", start, false)
		u.log.Error("Error getting user by email", slog.String("email", email), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: get user: %w", custom_errors.ErrStorage, err)
	}

	u.observe("user_get_by_email", start, true)
	return &user, nil
}

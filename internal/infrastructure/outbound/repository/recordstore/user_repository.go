package recordstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
)

type UserRepository struct {
	db *Database
	tx *Transaction
}

func (r *UserRepository) observe(queryType string, start time.Time, err error) {
	success := err == nil || errors.Is(err, custom_errors.ErrUserNotFound) || errors.Is(err, custom_errors.ErrUserExists)
	r.db.metrics.IncrementDatabaseQueries(queryType, success)
	r.db.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (err error) {
	start := time.Now()
	defer func() { r.observe("user_create", start, err) }()

	err = r.db.write(ctx, r.tx, func(tx *Transaction) error {
		if err := tx.checkWritable(); err != nil {
			return err
		}
		users, err := tx.loadUsers(ctx)
		if err != nil {
			return err
		}
		if users.Has(user.Email) {
			return custom_errors.ErrUserExists
		}
		u := *user
		users.Put(user.Email, &u)
		tx.dirtyUsers = true
		return nil
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserExists) {
			r.db.log.Debug("User already exists", slog.String("email", user.Email))
		} else {
			r.db.log.Error("Error creating user", slog.String("email", user.Email), slog.String("error", err.Error()))
		}
		return err
	}
	r.db.log.Debug("Successfully created user", slog.String("email", user.Email))
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (result *model.User, err error) {
	start := time.Now()
	defer func() { r.observe("user_get_by_email", start, err) }()

	err = r.db.read(ctx, r.tx, func(tx *Transaction) error {
		users, err := tx.loadUsers(ctx)
		if err != nil {
			return err
		}
		u, ok := users.Get(email)
		if !ok {
			return custom_errors.ErrUserNotFound
		}
		c := *u
		result = &c
		return nil
	})
	if err != nil {
		if !errors.Is(err, custom_errors.ErrUserNotFound) {
			r.db.log.Error("Error getting user by email", slog.String("email", email), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return result, nil
}

package account_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"notes-blog-service/internal/application/validator"
	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/uow"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
)

type AccountService struct {
	uow     uow.UnitOfWork
	users   user_repository.Repository
	hasher  ports.PasswordHasher
	log     ports.Logger
	metrics ports.MetricsProvider
	now     func() time.Time
}

func NewAccountService(
	uow uow.UnitOfWork,
	users user_repository.Repository,
	hasher ports.PasswordHasher,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *AccountService {
	return &AccountService{
		uow:     uow,
		users:   users,
		hasher:  hasher,
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

func storageError(err error) error {
	if errors.Is(err, custom_errors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", custom_errors.ErrStorage, err)
}

// Register creates the account inside one transaction so the existence check
// and the insert cannot interleave with another registration.
func (s *AccountService) Register(ctx context.Context, req *model.RegisterDTO) (err error) {
	defer func() { s.metrics.IncrementAccountOperations("register", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return storageError(err)
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, custom_errors.ErrTxClosed) {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	users := tx.UserRepository()

	_, err = users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		s.log.Debug("Registration for existing account", slog.String("email", req.Email))
		return custom_errors.ErrUserExists
	case !errors.Is(err, custom_errors.ErrUserNotFound):
		s.log.Error("Failed to look up account", slog.String("email", req.Email), slog.String("error", err.Error()))
		return storageError(err)
	}

	if err = validator.ValidateRegistration(req); err != nil {
		s.log.Debug("Registration rejected", slog.String("email", req.Email), slog.String("reason", err.Error()))
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err = users.Create(ctx, user); err != nil {
		if errors.Is(err, custom_errors.ErrUserExists) {
			return custom_errors.ErrUserExists
		}
		s.log.Error("Failed to create account", slog.String("email", req.Email), slog.String("error", err.Error()))
		return storageError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return storageError(err)
	}
	txCommitted = true

	s.log.Info("Account registered", slog.String("email", user.Email), slog.String("username", user.Username))
	return nil
}

// Login reports ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *AccountService) Login(ctx context.Context, email, password string) (identity *model.Identity, err error) {
	defer func() { s.metrics.IncrementAccountOperations("login", err == nil) }()

	if email == "" || password == "" {
		return nil, custom_errors.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Login for unknown account", slog.String("email", email))
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to look up account", slog.String("email", email), slog.String("error", err.Error()))
		return nil, storageError(err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		s.log.Debug("Login with wrong password", slog.String("email", email))
		return nil, custom_errors.ErrInvalidCredentials
	}

	s.log.Info("User logged in", slog.String("email", user.Email))
	return &model.Identity{Email: user.Email, Username: user.Username}, nil
}

func (s *AccountService) GetUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get user", slog.String("email", email), slog.String("error", err.Error()))
		return nil, storageError(err)
	}
	return user, nil
}

package user_repository

import (
	"context"

	model "notes-blog-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/user --outpkg mocks --filename UserRepository.go
type Repository interface {
	// Create fails with custom_errors.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

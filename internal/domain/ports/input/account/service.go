package account_service

import (
	"context"

	model "notes-blog-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/account --outpkg mocks --filename AccountService.go
type Service interface {
	Register(ctx context.Context, req *model.RegisterDTO) error
	Login(ctx context.Context, email, password string) (*model.Identity, error)
	GetUser(ctx context.Context, email string) (*model.User, error)
}

package post_repository

import (
	"context"

	model "notes-blog-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	// List returns posts oldest first together with the total count.
	List(ctx context.Context, offset, limit int) ([]*model.Post, int, error)
	Search(ctx context.Context, keyword string) ([]*model.Post, error)
}

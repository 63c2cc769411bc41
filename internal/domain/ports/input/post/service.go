package post_service

import (
	"context"

	model "notes-blog-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, author model.Identity, post *model.CreatePostDTO) (*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, page, pageSize int) (*model.Page, error)
	ListPostsByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error)
	SearchPosts(ctx context.Context, keyword string) ([]*model.Post, error)
	UpdatePost(ctx context.Context, actor model.Identity, id int64, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, actor model.Identity, id int64) error
}

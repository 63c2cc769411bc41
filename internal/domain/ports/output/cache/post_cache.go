package cache

import (
	"context"

	model "notes-blog-service/internal/domain/models"
)

// PostCache holds single posts. Every DeletePost advances the post's version, and
// SetPost is refused once the version moved past the one the caller read, so a
// refill that raced with an invalidation never lands.
//
//go:generate mockery --name PostCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename PostCache.go
type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.Post, error)
	Version(ctx context.Context, postID int64) (int64, error)
	SetPost(ctx context.Context, post *model.Post, version int64) error
	DeletePost(ctx context.Context, postID int64) error
}

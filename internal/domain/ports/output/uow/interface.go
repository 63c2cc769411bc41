package uow

import (
	"context"

	"notes-blog-service/internal/domain/ports/output/ids"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
)

// UnitOfWork serializes a load-mutate-save cycle. A Transaction holds exclusive
// write access until Commit or Rollback.
//
//go:generate mockery --name UnitOfWork --dir . --output ../../../../../mocks/uow --outpkg mocks --filename UnitOfWork.go
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

//go:generate mockery --name Transaction --dir . --output ../../../../../mocks/uow --outpkg mocks --filename Transaction.go
type Transaction interface {
	PostRepository() post_repository.Repository
	UserRepository() user_repository.Repository
	IDAllocator() ids.Allocator
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

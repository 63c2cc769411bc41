package ids

import "context"

// Allocator hands out post identifiers that were never issued before.
//
//go:generate mockery --name Allocator --dir . --output ../../../../../mocks/ids --outpkg mocks --filename Allocator.go
type Allocator interface {
	NextPostID(ctx context.Context) (int64, error)
}

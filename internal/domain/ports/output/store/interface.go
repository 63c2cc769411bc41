package store

import "context"

// RecordStore persists whole keyed collections.
// Load leaves dest untouched when the collection has never been saved.
// Save replaces the collection in one step; a failed Save keeps the previous content.
//
//go:generate mockery --name RecordStore --dir . --output ../../../../../mocks --outpkg mocks --filename RecordStore.go
type RecordStore interface {
	Load(ctx context.Context, collection string, dest any) error
	Save(ctx context.Context, collection string, src any) error
}

const (
	CollectionUsers    = "users"
	CollectionPosts    = "posts"
	CollectionCounters = "counters"
)

package memory_store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/outbound/store/codec"
)

// Store keeps encoded snapshots in memory. Callers never share record pointers
// with the store because every Load decodes a fresh copy.
type Store struct {
	log         ports.Logger
	metrics     ports.MetricsProvider
	mu          sync.RWMutex
	collections map[string][]byte
}

func NewStore(log ports.Logger, metrics ports.MetricsProvider) *Store {
	return &Store{
		log:         log,
		metrics:     metrics,
		collections: make(map[string][]byte),
	}
}

func (s *Store) Load(ctx context.Context, collection string, dest any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}

	s.mu.RLock()
	data, ok := s.collections[collection]
	s.mu.RUnlock()

	if !ok {
		codec.Observe(s.metrics, codec.QueryLoad, start, true)
		s.log.Debug("Collection not found, loading empty", slog.String("collection", collection))
		return nil
	}
	if err := codec.Decode(collection, data, dest); err != nil {
		codec.Observe(s.metrics, codec.QueryLoad, start, false)
		return err
	}
	codec.Observe(s.metrics, codec.QueryLoad, start, true)
	return nil
}

func (s *Store) Save(ctx context.Context, collection string, src any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}

	data, err := codec.Encode(collection, src)
	if err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		s.log.Error("Failed to encode collection", slog.String("collection", collection), slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()

	codec.Observe(s.metrics, codec.QuerySave, start, true)
	return nil
}

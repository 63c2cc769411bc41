package file_store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/outbound/store/codec"
)

// Store keeps one JSON file per collection inside dir.
type Store struct {
	dir     string
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewStore(dir string, log ports.Logger, metrics ports.MetricsProvider) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("Failed to create data directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: create data directory: %w", custom_errors.ErrStorage, err)
	}
	return &Store{dir: dir, log: log, metrics: metrics}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) Load(ctx context.Context, collection string, dest any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			codec.Observe(s.metrics, codec.QueryLoad, start, true)
			s.log.Debug("Collection file not found, loading empty", slog.String("collection", collection))
			return nil
		}
		codec.Observe(s.metrics, codec.QueryLoad, start, false)
		s.log.Error("Failed to read collection file", slog.String("collection", collection), slog.String("error", err.Error()))
		return fmt.Errorf("%w: read %s: %w", custom_errors.ErrStorage, collection, err)
	}

	if err := codec.Decode(collection, data, dest); err != nil {
		codec.Observe(s.metrics, codec.QueryLoad, start, false)
		s.log.Error("Failed to decode collection file", slog.String("collection", collection), slog.String("error", err.Error()))
		return err
	}

	codec.Observe(s.metrics, codec.QueryLoad, start, true)
	s.log.Debug("Loaded collection", slog.String("collection", collection), slog.Int("bytes", len(data)))
	return nil
}

// Save writes the collection to a temp file in the same directory and renames it
// over the previous file, so readers see either the old or the new content.
func (s *Store) Save(ctx context.Context, collection string, src any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := codec.Encode(collection, src)
	if err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		s.log.Error("Failed to encode collection", slog.String("collection", collection), slog.String("error", err.Error()))
		return err
	}

	if err := s.writeAtomic(collection, data); err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		s.log.Error("Failed to write collection file", slog.String("collection", collection), slog.String("error", err.Error()))
		return fmt.Errorf("%w: write %s: %w", custom_errors.ErrStorage, collection, err)
	}

	codec.Observe(s.metrics, codec.QuerySave, start, true)
	s.log.Debug("Saved collection", slog.String("collection", collection), slog.Int("bytes", len(data)))
	return nil
}

func (s *Store) writeAtomic(collection string, data []byte) (err error) {
	tmp, err := os.CreateTemp(s.dir, "."+collection+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, s.path(collection)); err != nil {
		return err
	}
	return syncDir(s.dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	// Some filesystems refuse fsync on directories; the rename already happened.
	_ = d.Sync()
	return nil
}

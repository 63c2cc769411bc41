package minio_store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/config"
	"notes-blog-service/internal/infrastructure/outbound/store/codec"
)

const noSuchKey = "NoSuchKey"

// Store keeps one object per collection. PutObject replaces an object as a whole,
// so a reader never observes a partially written collection.
type Store struct {
	client  *minio.Client
	bucket  string
	prefix  string
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewStore(ctx context.Context, cfg config.MinIO, log ports.Logger, metrics ports.MetricsProvider) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := mc.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}

	log.Info("Connected to object storage",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket))
	return &Store{client: mc, bucket: cfg.Bucket, prefix: cfg.Prefix, log: log, metrics: metrics}, nil
}

func (s *Store) objectName(collection string) string {
	return s.prefix + collection + ".json"
}

func (s *Store) Load(ctx context.Context, collection string, dest any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(collection), minio.GetObjectOptions{})
	if err != nil {
		return s.loadFailed(collection, start, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			codec.Observe(s.metrics, codec.QueryLoad, start, true)
			s.log.Debug("Collection object not found, loading empty", slog.String("collection", collection))
			return nil
		}
		return s.loadFailed(collection, start, err)
	}

	if err := codec.Decode(collection, data, dest); err != nil {
		codec.Observe(s.metrics, codec.QueryLoad, start, false)
		return err
	}
	codec.Observe(s.metrics, codec.QueryLoad, start, true)
	return nil
}

func (s *Store) loadFailed(collection string, start time.Time, err error) error {
	codec.Observe(s.metrics, codec.QueryLoad, start, false)
	s.log.Error("Failed to read collection object", slog.String("collection", collection), slog.String("error", err.Error()))
	return fmt.Errorf("%w: read %s: %w", custom_errors.ErrStorage, collection, err)
}

func (s *Store) Save(ctx context.Context, collection string, src any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}

	data, err := codec.Encode(collection, src)
	if err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.objectName(collection), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		s.log.Error("Failed to write collection object", slog.String("collection", collection), slog.String("error", err.Error()))
		return fmt.Errorf("%w: write %s: %w", custom_errors.ErrStorage, collection, err)
	}

	codec.Observe(s.metrics, codec.QuerySave, start, true)
	s.log.Debug("Saved collection object", slog.String("collection", collection), slog.Int("bytes", len(data)))
	return nil
}

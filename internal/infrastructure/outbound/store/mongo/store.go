package mongo_store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/outbound/store/codec"
)

// document holds a whole collection. Single-document replacement is atomic in MongoDB.
type document struct {
	ID        string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type Store struct {
	col     *mongo.Collection
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewStore(col *mongo.Collection, log ports.Logger, metrics ports.MetricsProvider) *Store {
	return &Store{col: col, log: log, metrics: metrics}
}

// Connect opens a client and pings it. Caller should call client.Disconnect(ctx).
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *Store) Load(ctx context.Context, collection string, dest any) error {
	start := time.Now()
	if err := codec.ValidateName(collection); err != nil {
		return err
	}

	var doc document
	err := s.col.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			codec.Observe(s.metrics, codec.QueryLoad, start, true)
			s.log.Debug("Collection document not found, loading empty", slog.String("collection", collection))
			return nil
		}
		codec.Observe(s.metrics, codec.QueryLoad, start, false)
		s.log.Error("Failed to load collection document", slog.String("collection", collection), slog.String("error", err.Error()))
		return fmt.Errorf("%w: load %s: %w", custom_errors.ErrStorage, collection, err)
	}

	if err := codec.Decode(collection, []byte(doc.Data), dest); err != nil {
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
		return err
	}

	doc := document{ID: collection, Data: string(data), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": collection}, doc, opts); err != nil {
		codec.Observe(s.metrics, codec.QuerySave, start, false)
		s.log.Error("Failed to save collection document", slog.String("collection", collection), slog.String("error", err.Error()))
		return fmt.Errorf("%w: save %s: %w", custom_errors.ErrStorage, collection, err)
	}

	codec.Observe(s.metrics, codec.QuerySave, start, true)
	s.log.Debug("Saved collection document", slog.String("collection", collection))
	return nil
}

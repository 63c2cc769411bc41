package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/config"
)

const (
	dialTimeout = 5 * time.Second
	opTimeout   = 2 * time.Second
)

var errCounterMoved = errors.New("counter moved")

// Client stores JSON values under a key namespace shared by every cache in the service.
type Client struct {
	rdb       *redis.Client
	namespace string
	log       ports.Logger
}

func NewClient(cfg config.Redis, log ports.Logger) (*Client, error) {
	addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))
	c := &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  dialTimeout,
			ReadTimeout:  opTimeout,
			WriteTimeout: opTimeout,
		}),
		namespace: cfg.KeyPrefix,
		log:       log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.rdb.Close()
		return nil, err
	}

	log.Info("Redis client ready", slog.String("addr", addr), slog.Int("db", cfg.DB))
	return c, nil
}

func (c *Client) key(k string) string {
	return c.namespace + k
}

// GetJSON decodes the value at key into dest. A missing key is ErrCacheMiss.
func (c *Client) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return custom_errors.ErrCacheMiss
	case err != nil:
		c.log.Warn("Redis GET failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		c.log.Warn("Redis SET failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Counter reads an integer key; a missing key reads as zero.
func (c *Client) Counter(ctx context.Context, key string) (int64, error) {
	n, err := c.rdb.Get(ctx, c.key(key)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		c.log.Warn("Redis GET failed", slog.String("key", key), slog.String("error", err.Error()))
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return n, nil
}

// SetJSONIfCounter writes value at key only while counter still holds want. It
// reports false, without error, when the counter moved before or during the write.
func (c *Client) SetJSONIfCounter(ctx context.Context, counter string, want int64, key string, value any, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}

	counterKey := c.key(counter)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, counterKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != want {
			return errCounterMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(key), raw, ttl)
			return nil
		})
		return err
	}, counterKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errCounterMoved), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		c.log.Warn("Redis guarded SET failed", slog.String("key", key), slog.String("error", err.Error()))
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
}

// Advance increments counter and deletes keys in one MULTI/EXEC.
func (c *Client) Advance(ctx context.Context, counter string, counterTTL time.Duration, keys ...string) error {
	counterKey := c.key(counter)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, counterKey)
		pipe.Expire(ctx, counterKey, counterTTL)
		for _, k := range keys {
			pipe.Del(ctx, c.key(k))
		}
		return nil
	})
	if err != nil {
		c.log.Warn("Redis invalidation failed", slog.String("counter", counter), slog.String("error", err.Error()))
		return fmt.Errorf("redis advance %s: %w", counter, err)
	}
	return nil
}

// Del removes the keys and reports how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	n, err := c.rdb.Del(ctx, full...).Result()
	if err != nil {
		c.log.Warn("Redis DEL failed", slog.Any("keys", keys), slog.String("error", err.Error()))
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return n, nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, c.key(key)).Result()
	if err != nil {
		c.log.Warn("Redis EXISTS failed", slog.String("key", key), slog.String("error", err.Error()))
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.log.Error("Redis ping failed", slog.String("error", err.Error()))
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	c.log.Info("Redis connection closed")
	return nil
}

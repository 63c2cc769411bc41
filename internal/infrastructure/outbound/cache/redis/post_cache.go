package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
)

const (
	postKeyPrefix        = "post:"
	postVersionKeyPrefix = "post_version:"
	postTTL              = 30 * time.Minute
	// Versions outlive cached posts by far so a slow refill still sees the bump.
	postVersionTTL = 24 * time.Hour
)

var errNilPost = errors.New("cannot cache a nil post")

// PostCache keeps single posts as JSON under post:<id>, guarded by post_version:<id>.
type PostCache struct {
	client *Client
	ttl    time.Duration
	log    ports.Logger
}

func NewPostCache(client *Client, log ports.Logger) *PostCache {
	return &PostCache{client: client, ttl: postTTL, log: log}
}

func postKey(id int64) string {
	return postKeyPrefix + strconv.FormatInt(id, 10)
}

func postVersionKey(id int64) string {
	return postVersionKeyPrefix + strconv.FormatInt(id, 10)
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	post := new(model.Post)
	if err := p.client.GetJSON(ctx, postKey(postID), post); err != nil {
		return nil, err
	}
	return post, nil
}

func (p *PostCache) Version(ctx context.Context, postID int64) (int64, error) {
	return p.client.Counter(ctx, postVersionKey(postID))
}

func (p *PostCache) SetPost(ctx context.Context, post *model.Post, version int64) error {
	if post == nil {
		return errNilPost
	}
	stored, err := p.client.SetJSONIfCounter(ctx, postVersionKey(post.ID), version, postKey(post.ID), post, p.ttl)
	if err != nil {
		return err
	}
	if !stored {
		p.log.Debug("Skipped caching post invalidated during read", slog.Int64("post_id", post.ID))
		return nil
	}
	p.log.Debug("Post cached", slog.Int64("post_id", post.ID))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	if err := p.client.Advance(ctx, postVersionKey(postID), postVersionTTL, postKey(postID)); err != nil {
		return err
	}
	p.log.Debug("Post evicted from cache", slog.Int64("post_id", postID))
	return nil
}

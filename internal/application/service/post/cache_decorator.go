package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	post_service "notes-blog-service/internal/domain/ports/input/post"
	output "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
)

// PostServiceCacheDecorator reads single posts through the post cache and
// invalidates it on every successful update or delete. Cache failures never fail a request.
type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

// refill caches post unless it was invalidated after version was read.
func (d *PostServiceCacheDecorator) refill(ctx context.Context, post *model.Post, version int64) {
	start := time.Now()
	if err := d.postCache.SetPost(ctx, post, version); err != nil {
		d.log.Warn("Post cache write failed",
			slog.Int64("post_id", post.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id int64) {
	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Stale post may remain cached",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
}

// CreatePost leaves the cache cold; the first GetPost fills it.
func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, author model.Identity, post *model.CreatePostDTO) (*model.Post, error) {
	return d.service.CreatePost(ctx, author, post)
}

// lookup reports a cached post, counting hits and misses. Cache errors other than a miss are logged and treated as one.
func (d *PostServiceCacheDecorator) lookup(ctx context.Context, id int64) (*model.Post, bool) {
	start := time.Now()
	post, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(start))

	switch {
	case err == nil:
		d.metrics.IncrementCacheHits()
		return post, true
	case errors.Is(err, custom_errors.ErrCacheMiss):
		d.metrics.IncrementCacheMisses()
	default:
		d.log.Warn("Post cache unavailable, reading from store",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	return nil, false
}

// GetPost reads the cache version before the store, so an update or delete that
// lands while the post is being loaded makes the refill a no-op.
func (d *PostServiceCacheDecorator) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	if post, ok := d.lookup(ctx, id); ok {
		return post, nil
	}

	version, versionErr := d.postCache.Version(ctx, id)
	if versionErr != nil {
		d.log.Warn("Post cache version unavailable, skipping refill",
			slog.Int64("post_id", id),
			slog.String("error", versionErr.Error()))
	}

	post, err := d.service.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if versionErr == nil {
		d.refill(ctx, post, version)
	}
	return post, nil
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context, page, pageSize int) (*model.Page, error) {
	return d.service.ListPosts(ctx, page, pageSize)
}

func (d *PostServiceCacheDecorator) ListPostsByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error) {
	return d.service.ListPostsByAuthor(ctx, authorEmail)
}

func (d *PostServiceCacheDecorator) SearchPosts(ctx context.Context, keyword string) ([]*model.Post, error) {
	return d.service.SearchPosts(ctx, keyword)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, actor model.Identity, id int64, post *model.UpdatePostDTO) (*model.Post, error) {
	result, err := d.service.UpdatePost(ctx, actor, id, post)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, id)
	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, actor model.Identity, id int64) error {
	if err := d.service.DeletePost(ctx, actor, id); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}

package recordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
)

type PostRepository struct {
	db *Database
	tx *Transaction
}

func postKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func copyPost(p *model.Post) *model.Post {
	c := *p
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func (r *PostRepository) observe(queryType string, start time.Time, err error) {
	success := err == nil || errors.Is(err, custom_errors.ErrPostNotFound)
	r.db.metrics.IncrementDatabaseQueries(queryType, success)
	r.db.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) (result *model.Post, err error) {
	start := time.Now()
	defer func() { r.observe("post_create", start, err) }()
	r.db.log.Debug("Creating new post", slog.Int64("id", post.ID), slog.String("author_email", post.AuthorEmail))

	err = r.db.write(ctx, r.tx, func(tx *Transaction) error {
		if err := tx.checkWritable(); err != nil {
			return err
		}
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		key := postKey(post.ID)
		if posts.Has(key) {
			return fmt.Errorf("%w: post %d already exists", custom_errors.ErrStorage, post.ID)
		}
		posts.Put(key, copyPost(post))
		tx.dirtyPosts = true
		result = copyPost(post)
		return nil
	})
	if err != nil {
		r.db.log.Error("Error creating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, err
	}
	r.db.log.Debug("Successfully created post", slog.Int64("id", result.ID))
	return result, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (result *model.Post, err error) {
	start := time.Now()
	defer func() { r.observe("post_get_by_id", start, err) }()

	err = r.db.read(ctx, r.tx, func(tx *Transaction) error {
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		p, ok := posts.Get(postKey(id))
		if !ok {
			return custom_errors.ErrPostNotFound
		}
		result = copyPost(p)
		return nil
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			r.db.log.Debug("Post not found by id", slog.Int64("id", id))
		} else {
			r.db.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return result, nil
}

func (r *PostRepository) GetByAuthor(ctx context.Context, authorEmail string) (result []*model.Post, err error) {
	start := time.Now()
	defer func() { r.observe("post_get_by_author", start, err) }()

	err = r.db.read(ctx, r.tx, func(tx *Transaction) error {
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		result = make([]*model.Post, 0)
		for _, p := range posts.Values() {
			if p.AuthorEmail == authorEmail {
				result = append(result, copyPost(p))
			}
		}
		return nil
	})
	if err != nil {
		r.db.log.Error("Error getting posts by author", slog.String("author_email", authorEmail), slog.String("error", err.Error()))
		return nil, err
	}
	return result, nil
}

// Update replaces the stored post in place, keeping its position in the collection.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) (result *model.Post, err error) {
	start := time.Now()
	defer func() { r.observe("post_update", start, err) }()

	err = r.db.write(ctx, r.tx, func(tx *Transaction) error {
		if err := tx.checkWritable(); err != nil {
			return err
		}
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		key := postKey(post.ID)
		if !posts.Has(key) {
			return custom_errors.ErrPostNotFound
		}
		posts.Put(key, copyPost(post))
		tx.dirtyPosts = true
		result = copyPost(post)
		return nil
	})
	if err != nil {
		if !errors.Is(err, custom_errors.ErrPostNotFound) {
			r.db.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	r.db.log.Debug("Successfully updated post", slog.Int64("id", post.ID))
	return result, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.observe("post_delete", start, err) }()

	err = r.db.write(ctx, r.tx, func(tx *Transaction) error {
		if err := tx.checkWritable(); err != nil {
			return err
		}
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		if !posts.Delete(postKey(id)) {
			return custom_errors.ErrPostNotFound
		}
		tx.dirtyPosts = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, custom_errors.ErrPostNotFound) {
			r.db.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return err
	}
	r.db.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) (result []*model.Post, total int, err error) {
	start := time.Now()
	defer func() { r.observe("post_list", start, err) }()

	err = r.db.read(ctx, r.tx, func(tx *Transaction) error {
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		all := posts.Values()
		total = len(all)
		from, to := model.SliceBounds(offset, limit, total)
		result = make([]*model.Post, 0, to-from)
		for _, p := range all[from:to] {
			result = append(result, copyPost(p))
		}
		return nil
	})
	if err != nil {
		r.db.log.Error("Error listing posts", slog.Int("offset", offset), slog.Int("limit", limit), slog.String("error", err.Error()))
		return nil, 0, err
	}
	return result, total, nil
}

// Search matches keyword case-sensitively against title and body.
func (r *PostRepository) Search(ctx context.Context, keyword string) (result []*model.Post, err error) {
	start := time.Now()
	defer func() { r.observe("post_search", start, err) }()

	err = r.db.read(ctx, r.tx, func(tx *Transaction) error {
		posts, err := tx.loadPosts(ctx)
		if err != nil {
			return err
		}
		result = make([]*model.Post, 0)
		for _, p := range posts.Values() {
			if strings.Contains(p.Title, keyword) || strings.Contains(p.Body, keyword) {
				result = append(result, copyPost(p))
			}
		}
		return nil
	})
	if err != nil {
		r.db.log.Error("Error searching posts", slog.String("keyword", keyword), slog.String("error", err.Error()))
		return nil, err
	}
	return result, nil
}

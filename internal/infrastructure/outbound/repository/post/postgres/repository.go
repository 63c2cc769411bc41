package post_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/outbound/repository/postgres/db"
)

const postColumns = `id, title, body, author, author_email, created_at, updated_at`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
	// lockRows makes GetByID take a row lock; only meaningful inside a transaction.
	lockRows bool
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider, lockRows bool) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics, lockRows: lockRows}
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	var updatedAt pgtype.Timestamptz
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Author,
		&post.AuthorEmail,
		&post.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		post.UpdatedAt = &t
	}
	return &post, nil
}

func collectPosts(rows pgx.Rows) ([]*model.Post, error) {
	defer rows.Close()
	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("id", post.ID), slog.String("author_email", post.AuthorEmail))

	args := pgx.NamedArgs{
		"id":           post.ID,
		"title":        post.Title,
		"body":         post.Body,
		"author":       post.Author,
		"author_email": post.AuthorEmail,
		"created_at":   pgtype.Timestamptz{Time: post.CreatedAt, Valid: true},
	}
	query := `
		INSERT INTO posts (id, title, body, author, author_email, created_at)
		VALUES (@id, @title, @body, @author, @author_email, @created_at)
		RETURNING ` + postColumns

	created, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		p.log.Error("Error creating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: create post: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", created.ID))
	return created, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`
	if p.lockRows {
		query += ` FOR UPDATE`
	}
	post, err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.observe("post_get_by_id", start, true)
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.observe("post_get_by_id", start, false)
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: get post: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) GetByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting posts by author", slog.String("author_email", authorEmail))

	query := `SELECT ` + postColumns + ` FROM posts WHERE author_email = @author_email ORDER BY id`
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs{"author_email": authorEmail})
	if err != nil {
		p.observe("post_get_by_author", start, false)
		p.log.Error("Error getting posts by author", slog.String("author_email", authorEmail), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: get posts by author: %w", custom_errors.ErrStorage, err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		p.observe("post_get_by_author", start, false)
		p.log.Error("Error scanning posts by author", slog.String("author_email", authorEmail), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: scan posts by author: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_get_by_author", start, true)
	p.log.Debug("Successfully retrieved posts by author", slog.String("author_email", authorEmail), slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", post.ID))

	updatedAt := pgtype.Timestamptz{}
	if post.UpdatedAt != nil {
		updatedAt = pgtype.Timestamptz{Time: *post.UpdatedAt, Valid: true}
	}
	args := pgx.NamedArgs{
		"id":         post.ID,
		"title":      post.Title,
		"body":       post.Body,
		"updated_at": updatedAt,
	}
	query := `UPDATE posts SET title = @title, body = @body, updated_at = @updated_at
		WHERE id = @id RETURNING ` + postColumns

	updated, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.observe("post_update", start, true)
			p.log.Debug("Post not found by id during Update", slog.Int64("id", post.ID))
			return nil, custom_errors.ErrPostNotFound
		}
		p.observe("post_update", start, false)
		p.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: update post: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updated.ID))
	return updated, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("%w: delete post: %w", custom_errors.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, true)
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

// List returns posts in id order, which is creation order. The total and the page
// come from one statement so both see the same snapshot; an empty page still yields
// one row carrying the total.
func (p *PostRepository) List(ctx context.Context, offset, limit int) ([]*model.Post, int, error) {
	start := time.Now()
	p.log.Debug("Listing posts", slog.Int("offset", offset), slog.Int("limit", limit))

	args := pgx.NamedArgs{"offset": max(offset, 0)}
	page := `SELECT ` + postColumns + ` FROM posts ORDER BY id OFFSET @offset`
	if limit > 0 {
		page += ` LIMIT @limit`
		args["limit"] = limit
	}
	query := `WITH total AS (SELECT COUNT(*) AS n FROM posts), page AS (` + page + `)
		SELECT total.n, page.id, page.title, page.body, page.author, page.author_email, page.created_at, page.updated_at
		FROM total LEFT JOIN page ON true
		ORDER BY page.id`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("%w: list posts: %w", custom_errors.ErrStorage, err)
	}
	posts, total, err := collectPage(rows)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error scanning posts during List", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("%w: scan posts: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_list", start, true)
	p.log.Debug("Retrieved posts in List", slog.Int("count", len(posts)), slog.Int("total", total))
	return posts, total, nil
}

// collectPage reads rows of (total, post columns...) where the post columns are
// NULL when the page is empty.
func collectPage(rows pgx.Rows) ([]*model.Post, int, error) {
	defer rows.Close()
	posts := make([]*model.Post, 0)
	total := 0
	for rows.Next() {
		var (
			id                         pgtype.Int8
			title, body, author, email pgtype.Text
			createdAt, updatedAt       pgtype.Timestamptz
		)
		if err := rows.Scan(&total, &id, &title, &body, &author, &email, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if !id.Valid {
			continue
		}
		post := &model.Post{
			ID:          id.Int64,
			Title:       title.String,
			Body:        body.String,
			Author:      author.String,
			AuthorEmail: email.String,
			CreatedAt:   createdAt.Time,
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			post.UpdatedAt = &t
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Search uses strpos so the match is case-sensitive and needs no LIKE escaping.
func (p *PostRepository) Search(ctx context.Context, keyword string) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Searching posts", slog.String("keyword", keyword))

	query := `SELECT ` + postColumns + ` FROM posts
		WHERE strpos(title, @keyword) > 0 OR strpos(body, @keyword) > 0
		ORDER BY id`
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs{"keyword": keyword})
	if err != nil {
		p.observe("post_search", start, false)
		p.log.Error("Error searching posts", slog.String("keyword", keyword), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: search posts: %w", custom_errors.ErrStorage, err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		p.observe("post_search", start, false)
		p.log.Error("Error scanning posts during Search", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: scan posts: %w", custom_errors.ErrStorage, err)
	}

	p.observe("post_search", start, true)
	return posts, nil
}

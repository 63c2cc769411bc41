package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"notes-blog-service/internal/application/validator"
	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	"notes-blog-service/internal/domain/ports/output/uow"
)

// Operation names a mutating post operation.
type Operation int

const (
	OperationCreate Operation = iota + 1
	OperationUpdate
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

type mutation struct {
	actor model.Identity
	id    int64
	title string
	body  string
}

type mutationHandler func(ctx context.Context, tx uow.Transaction, m *mutation) (*model.Post, error)

type PostService struct {
	postRepo        post_repository.Repository
	uow             uow.UnitOfWork
	log             ports.Logger
	metrics         ports.MetricsProvider
	defaultPageSize int
	now             func() time.Time
	handlers        map[Operation]mutationHandler
}

func NewPostService(
	postRepo post_repository.Repository,
	uow uow.UnitOfWork,
	log ports.Logger,
	metrics ports.MetricsProvider,
	defaultPageSize int,
) *PostService {
	if defaultPageSize <= 0 {
		defaultPageSize = model.DefaultPageSize
	}
	s := &PostService{
		postRepo:        postRepo,
		uow:             uow,
		log:             log,
		metrics:         metrics,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
	}
	s.handlers = map[Operation]mutationHandler{
		OperationCreate: s.create,
		OperationUpdate: s.update,
		OperationDelete: s.delete,
	}
	return s
}

func passThrough(err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrValidation),
		errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrUserNotFound),
		errors.Is(err, custom_errors.ErrForbidden),
		errors.Is(err, custom_errors.ErrStorage),
		errors.Is(err, custom_errors.ErrUnknownOperation):
		return err
	default:
		return fmt.Errorf("%w: %w", custom_errors.ErrStorage, err)
	}
}

// mutate runs one handler inside its own transaction.
func (s *PostService) mutate(ctx context.Context, op Operation, m *mutation) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations(op.String(), err == nil) }()

	handler, ok := s.handlers[op]
	if !ok {
		s.log.Error("Unknown post operation", slog.Int("operation", int(op)))
		return nil, fmt.Errorf("%w: %s", custom_errors.ErrUnknownOperation, op)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, passThrough(err)
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, custom_errors.ErrTxClosed) {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	result, err = handler(ctx, tx, m)
	if err != nil {
		return nil, passThrough(err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("operation", op.String()), slog.String("error", err.Error()))
		return nil, passThrough(err)
	}
	txCommitted = true
	return result, nil
}

func (s *PostService) create(ctx context.Context, tx uow.Transaction, m *mutation) (*model.Post, error) {
	if err := validator.ValidatePostTitle(m.title); err != nil {
		return nil, err
	}

	author, err := tx.UserRepository().GetByEmail(ctx, m.actor.Email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Post author not found", slog.String("author_email", m.actor.Email))
		}
		return nil, err
	}

	id, err := tx.IDAllocator().NextPostID(ctx)
	if err != nil {
		s.log.Error("Failed to allocate post id", slog.String("error", err.Error()))
		return nil, err
	}

	post := &model.Post{
		ID:          id,
		Title:       m.title,
		Body:        m.body,
		Author:      author.Username,
		AuthorEmail: author.Email,
		CreatedAt:   s.now().UTC(),
	}
	created, err := tx.PostRepository().Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.log.Info("Post created", slog.Int64("post_id", created.ID), slog.String("author_email", created.AuthorEmail))
	return created, nil
}

// loadOwned returns the post when it exists and the actor owns it.
func (s *PostService) loadOwned(ctx context.Context, tx uow.Transaction, m *mutation) (*model.Post, error) {
	post, err := tx.PostRepository().GetByID(ctx, m.id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(m.actor) {
		s.log.Debug("Post access denied",
			slog.Int64("post_id", m.id),
			slog.String("actor_email", m.actor.Email))
		return nil, custom_errors.ErrForbidden
	}
	return post, nil
}

func (s *PostService) update(ctx context.Context, tx uow.Transaction, m *mutation) (*model.Post, error) {
	post, err := s.loadOwned(ctx, tx, m)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePostTitle(m.title); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post.Title = m.title
	post.Body = m.body
	post.UpdatedAt = &now

	updated, err := tx.PostRepository().Update(ctx, post)
	if err != nil {
		return nil, err
	}
	s.log.Info("Post updated", slog.Int64("post_id", updated.ID))
	return updated, nil
}

func (s *PostService) delete(ctx context.Context, tx uow.Transaction, m *mutation) (*model.Post, error) {
	post, err := s.loadOwned(ctx, tx, m)
	if err != nil {
		return nil, err
	}
	if err := tx.PostRepository().Delete(ctx, post.ID); err != nil {
		return nil, err
	}
	s.log.Info("Post deleted", slog.Int64("post_id", post.ID))
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, author model.Identity, post *model.CreatePostDTO) (*model.Post, error) {
	return s.mutate(ctx, OperationCreate, &mutation{actor: author, title: post.Title, body: post.Body})
}

func (s *PostService) UpdatePost(ctx context.Context, actor model.Identity, id int64, post *model.UpdatePostDTO) (*model.Post, error) {
	return s.mutate(ctx, OperationUpdate, &mutation{actor: actor, id: id, title: post.Title, body: post.Body})
}

func (s *PostService) DeletePost(ctx context.Context, actor model.Identity, id int64) error {
	_, err := s.mutate(ctx, OperationDelete, &mutation{actor: actor, id: id})
	return err
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("post_id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post by id", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, passThrough(err)
	}
	return post, nil
}

// ListPosts returns one page in creation order. A page outside [1, TotalPages]
// is reported through Page.OutOfRange rather than an error.
func (s *PostService) ListPosts(ctx context.Context, page, pageSize int) (*model.Page, error) {
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	items, total, err := s.postRepo.List(ctx, model.PageOffset(page, pageSize), pageSize)
	if err != nil {
		s.log.Error("Failed to list posts", slog.Int("page", page), slog.String("error", err.Error()))
		return nil, passThrough(err)
	}

	result := &model.Page{
		Items:      items,
		Number:     page,
		Size:       pageSize,
		TotalItems: total,
		TotalPages: model.TotalPages(total, pageSize),
	}
	if page < 1 || page > result.TotalPages {
		s.log.Debug("Requested page out of range",
			slog.Int("page", page),
			slog.Int("total_pages", result.TotalPages))
		result.OutOfRange = true
		result.Items = []*model.Post{}
	}
	return result, nil
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error) {
	posts, err := s.postRepo.GetByAuthor(ctx, authorEmail)
	if err != nil {
		s.log.Error("Failed to list posts by author", slog.String("author_email", authorEmail), slog.String("error", err.Error()))
		return nil, passThrough(err)
	}
	return posts, nil
}

func (s *PostService) SearchPosts(ctx context.Context, keyword string) ([]*model.Post, error) {
	posts, err := s.postRepo.Search(ctx, keyword)
	if err != nil {
		s.log.Error("Failed to search posts", slog.String("keyword", keyword), slog.String("error", err.Error()))
		return nil, passThrough(err)
	}
	return posts, nil
}

package notes_grpc

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
)

type PostLister interface {
	ListPosts(ctx context.Context, page, pageSize int) (*model.Page, error)
	ListPostsByAuthor(ctx context.Context, authorEmail string) ([]*model.Post, error)
	SearchPosts(ctx context.Context, keyword string) ([]*model.Post, error)
}

type ListPostsHandler struct {
	postService PostLister
	validate    *validator.Validate
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, validate *validator.Validate, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type ListPostsRequestInternal struct {
	PageSize int `validate:"gte=0,lte=100"`
}

type ListByAuthorRequestInternal struct {
	AuthorEmail string `validate:"required,email"`
}

// ListPosts serves one page. A missing page field means the first page; a page
// size of zero means the service default.
func (h *ListPostsHandler) ListPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, err := intField(req, "page")
	if err != nil {
		return nil, errInvalidRequest
	}
	pageSize, err := intField(req, "page_size")
	if err != nil {
		return nil, errInvalidRequest
	}
	if err := h.validate.Struct(&ListPostsRequestInternal{PageSize: int(pageSize)}); err != nil {
		h.log.Debug("ListPosts validation failed", slog.String("error", err.Error()))
		return nil, errInvalidRequest
	}
	if _, present := req.GetFields()["page"]; !present {
		page = 1
	}
	h.log.Debug("Handling ListPosts request", slog.Int64("page", page), slog.Int64("page_size", pageSize))

	result, err := h.postService.ListPosts(ctx, int(page), int(pageSize))
	if err != nil {
		return nil, toStatus(h.log, "list posts", err)
	}
	return pageToStruct(result)
}

func (h *ListPostsHandler) ListPostsByAuthor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	authorEmail := stringField(req, "author_email")
	if err := h.validate.Struct(&ListByAuthorRequestInternal{AuthorEmail: authorEmail}); err != nil {
		h.log.Debug("ListPostsByAuthor validation failed", slog.String("error", err.Error()))
		return nil, errInvalidRequest
	}

	posts, err := h.postService.ListPostsByAuthor(ctx, authorEmail)
	if err != nil {
		return nil, toStatus(h.log, "list posts by author", err)
	}
	return postsToStruct(posts)
}

// SearchPosts matches the keyword as a case-sensitive substring of title or body.
// An empty keyword matches every post.
func (h *ListPostsHandler) SearchPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	keyword := stringField(req, "keyword")
	h.log.Debug("Handling SearchPosts request", slog.String("keyword", keyword))

	posts, err := h.postService.SearchPosts(ctx, keyword)
	if err != nil {
		return nil, toStatus(h.log, "search posts", err)
	}
	return postsToStruct(posts)
}

package notes_grpc

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
)

type PostCreator interface {
	CreatePost(ctx context.Context, author model.Identity, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService PostCreator
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *CreatePostHandler) CreatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	author, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		return nil, toStatus(h.log, "create post", err)
	}
	h.log.Debug("Handling CreatePost request", slog.String("author_email", author.Email))

	dto := &model.CreatePostDTO{
		Title: stringField(req, "title"),
		Body:  stringField(req, "body"),
	}
	post, err := h.postService.CreatePost(ctx, author, dto)
	if err != nil {
		return nil, toStatus(h.log, "create post", err)
	}

	h.log.Debug("Post created successfully", slog.Int64("post_id", post.ID))
	return postToStruct(post)
}

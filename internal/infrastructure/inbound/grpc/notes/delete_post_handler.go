package notes_grpc

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, actor model.Identity, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		return nil, toStatus(h.log, "delete post", err)
	}
	id, ok := postID(h.validate, req)
	if !ok {
		h.log.Debug("DeletePost validation failed", slog.String("actor_email", actor.Email))
		return nil, errInvalidRequest
	}
	h.log.Debug("Handling DeletePost request", slog.Int64("post_id", id), slog.String("actor_email", actor.Email))

	if err := h.postService.DeletePost(ctx, actor, id); err != nil {
		return nil, toStatus(h.log, "delete post", err)
	}

	h.log.Debug("Post deleted successfully", slog.Int64("post_id", id))
	return &structpb.Struct{}, nil
}

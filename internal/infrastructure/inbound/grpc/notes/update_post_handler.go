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

type PostUpdater interface {
	UpdatePost(ctx context.Context, actor model.Identity, id int64, post *model.UpdatePostDTO) (*model.Post, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	validate    *validator.Validate
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *UpdatePostHandler) UpdatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		return nil, toStatus(h.log, "update post", err)
	}
	id, ok := postID(h.validate, req)
	if !ok {
		h.log.Debug("UpdatePost validation failed", slog.String("actor_email", actor.Email))
		return nil, errInvalidRequest
	}
	h.log.Debug("Handling UpdatePost request", slog.Int64("post_id", id), slog.String("actor_email", actor.Email))

	dto := &model.UpdatePostDTO{
		Title: stringField(req, "title"),
		Body:  stringField(req, "body"),
	}
	post, err := h.postService.UpdatePost(ctx, actor, id, dto)
	if err != nil {
		return nil, toStatus(h.log, "update post", err)
	}
	return postToStruct(post)
}

package notes_grpc

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
)

type PostGetter interface {
	GetPost(ctx context.Context, id int64) (*model.Post, error)
}

type GetPostHandler struct {
	postService PostGetter
	validate    *validator.Validate
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, validate *validator.Validate, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type PostIDRequestInternal struct {
	PostID int64 `validate:"required,gt=0"`
}

// postID reads and validates the "id" field shared by the single-post methods.
func postID(validate *validator.Validate, req *structpb.Struct) (int64, bool) {
	id, err := intField(req, "id")
	if err != nil {
		return 0, false
	}
	if err := validate.Struct(&PostIDRequestInternal{PostID: id}); err != nil {
		return 0, false
	}
	return id, true
}

func (h *GetPostHandler) GetPost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, ok := postID(h.validate, req)
	if !ok {
		h.log.Debug("GetPost validation failed")
		return nil, errInvalidRequest
	}
	h.log.Debug("Handling GetPost request", slog.Int64("post_id", id))

	post, err := h.postService.GetPost(ctx, id)
	if err != nil {
		return nil, toStatus(h.log, "get post", err)
	}
	return postToStruct(post)
}

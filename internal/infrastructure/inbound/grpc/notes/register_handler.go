package notes_grpc

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
)

type AccountRegistrar interface {
	Register(ctx context.Context, req *model.RegisterDTO) error
}

type RegisterHandler struct {
	accountService AccountRegistrar
	log            ports.Logger
}

func NewRegisterHandler(accountService AccountRegistrar, log ports.Logger) *RegisterHandler {
	return &RegisterHandler{
		accountService: accountService,
		log:            log,
	}
}

func (h *RegisterHandler) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dto := &model.RegisterDTO{
		Email:                stringField(req, "email"),
		PhoneNumber:          stringField(req, "phone_number"),
		Username:             stringField(req, "username"),
		Password:             stringField(req, "password"),
		PasswordConfirmation: stringField(req, "password_confirmation"),
	}
	h.log.Debug("Handling Register request", slog.String("email", dto.Email))

	if err := h.accountService.Register(ctx, dto); err != nil {
		return nil, toStatus(h.log, "register", err)
	}

	return structpb.NewStruct(map[string]any{
		"email":    dto.Email,
		"username": dto.Username,
	})
}

package notes_grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
)

type AccountAuthenticator interface {
	Login(ctx context.Context, email, password string) (*model.Identity, error)
}

type LoginHandler struct {
	accountService AccountAuthenticator
	tokens         ports.TokenIssuer
	log            ports.Logger
}

func NewLoginHandler(accountService AccountAuthenticator, tokens ports.TokenIssuer, log ports.Logger) *LoginHandler {
	return &LoginHandler{
		accountService: accountService,
		tokens:         tokens,
		log:            log,
	}
}

func (h *LoginHandler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := stringField(req, "email")
	h.log.Debug("Handling Login request", slog.String("email", email))

	identity, err := h.accountService.Login(ctx, email, stringField(req, "password"))
	if err != nil {
		return nil, toStatus(h.log, "login", err)
	}

	token, session, err := h.tokens.Issue(*identity)
	if err != nil {
		return nil, toStatus(h.log, "issue token", err)
	}

	return structpb.NewStruct(map[string]any{
		"token":      token,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
		"email":      identity.Email,
		"username":   identity.Username,
	})
}

package notes_grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
)

type LogoutHandler struct {
	blacklist cache.TokenBlacklist
	log       ports.Logger
	now       func() time.Time
}

func NewLogoutHandler(blacklist cache.TokenBlacklist, log ports.Logger) *LogoutHandler {
	return &LogoutHandler{
		blacklist: blacklist,
		log:       log,
		now:       time.Now,
	}
}

// Logout revokes the presented token until it would have expired anyway.
func (h *LogoutHandler) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return nil, toStatus(h.log, "logout", custom_errors.ErrUnauthenticated)
	}

	if err := h.blacklist.Revoke(ctx, session.TokenID, session.ExpiresAt.Sub(h.now())); err != nil {
		return nil, toStatus(h.log, "logout", err)
	}

	h.log.Info("User logged out", slog.String("email", session.Identity.Email))
	return &structpb.Struct{}, nil
}

package middleware

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
)

const (
	authorizationHeader = "authorization"
	bearerPrefix        = "bearer "
)

type sessionKey struct{}

// SessionFromContext returns the session attached by UnaryAuthInterceptor.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*model.Session)
	return session, ok && session != nil
}

// ContextWithSession is used by handlers under test and by the auth interceptor.
func ContextWithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authorizationHeader)
	if len(values) == 0 {
		return ""
	}
	v := strings.TrimSpace(values[0])
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}

// UnaryAuthInterceptor resolves the bearer token into a session. Methods listed in
// protected reject calls without a valid, unrevoked token; other methods run
// anonymously when no token is presented. blacklist may be nil.
func UnaryAuthInterceptor(
	issuer ports.TokenIssuer,
	blacklist cache.TokenBlacklist,
	protected map[string]bool,
	log ports.Logger,
) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		token := bearerToken(ctx)
		if token == "" {
			if protected[info.FullMethod] {
				return nil, status.Error(codes.Unauthenticated, custom_errors.ErrUnauthenticated.Error())
			}
			return handler(ctx, req)
		}

		session, err := issuer.Parse(token)
		if err != nil {
			log.Debug("Rejected bearer token", slog.String("method", info.FullMethod), slog.String("error", err.Error()))
			return nil, status.Error(codes.Unauthenticated, custom_errors.ErrInvalidToken.Error())
		}

		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(ctx, session.TokenID)
			if err != nil {
				log.Error("Failed to check token blacklist", slog.String("error", err.Error()))
				return nil, status.Error(codes.Unavailable, "session check unavailable")
			}
			if revoked {
				return nil, status.Error(codes.Unauthenticated, custom_errors.ErrInvalidToken.Error())
			}
		}

		return handler(ContextWithSession(ctx, session), req)
	}
}

// IdentityFromContext returns the caller identity or ErrUnauthenticated.
func IdentityFromContext(ctx context.Context) (model.Identity, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return model.Identity{}, custom_errors.ErrUnauthenticated
	}
	return session.Identity, nil
}

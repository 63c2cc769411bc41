package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
	"notes-blog-service/internal/infrastructure/logger"
	"notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	"notes-blog-service/mocks"
	cache_mock "notes-blog-service/mocks/cache"
)

const protectedMethod = "/notes.v1.NotesService/CreatePost"

func incoming(authorization string) context.Context {
	if authorization == "" {
		return context.Background()
	}
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", authorization))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "padded", header: "  Bearer   abc  ", want: "abc"},
		{name: "basic scheme", header: "Basic abc"},
		{name: "missing", header: ""},
		{name: "scheme only", header: "Bearer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(incoming(tt.header)))
		})
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	log := logger.New("test")
	session := &model.Session{TokenID: "jti", Identity: model.Identity{Email: "a@b.io"}, ExpiresAt: time.Now().Add(time.Hour)}
	protected := map[string]bool{protectedMethod: true}

	tests := []struct {
		name     string
		method   string
		header   string
		mocks    func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist)
		wantCode codes.Code
		wantAuth bool
	}{
		{
			name:     "Anonymous public call",
			method:   "/notes.v1.NotesService/GetPost",
			mocks:    func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {},
			wantCode: codes.OK,
		},
		{
			name:     "Anonymous protected call",
			method:   protectedMethod,
			mocks:    func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {},
			wantCode: codes.Unauthenticated,
		},
		{
			name:   "Valid token",
			method: protectedMethod,
			header: "Bearer good",
			mocks: func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {
				issuer.On("Parse", "good").Return(session, nil)
				blacklist.On("IsRevoked", mock.Anything, "jti").Return(false, nil)
			},
			wantCode: codes.OK,
			wantAuth: true,
		},
		{
			name:   "Invalid token on public call",
			method: "/notes.v1.NotesService/GetPost",
			header: "Bearer bad",
			mocks: func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {
				issuer.On("Parse", "bad").Return(nil, custom_errors.ErrInvalidToken)
			},
			wantCode: codes.Unauthenticated,
		},
		{
			name:   "Revoked token",
			method: protectedMethod,
			header: "Bearer good",
			mocks: func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {
				issuer.On("Parse", "good").Return(session, nil)
				blacklist.On("IsRevoked", mock.Anything, "jti").Return(true, nil)
			},
			wantCode: codes.Unauthenticated,
		},
		{
			name:   "Blacklist unavailable",
			method: protectedMethod,
			header: "Bearer good",
			mocks: func(issuer *mocks.TokenIssuer, blacklist *cache_mock.TokenBlacklist) {
				issuer.On("Parse", "good").Return(session, nil)
				blacklist.On("IsRevoked", mock.Anything, "jti").Return(false, errors.New("dial tcp: refused"))
			},
			wantCode: codes.Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := mocks.NewTokenIssuer(t)
			blacklist := cache_mock.NewTokenBlacklist(t)
			tt.mocks(issuer, blacklist)

			interceptor := UnaryAuthInterceptor(issuer, blacklist, protected, log)
			var sawSession bool
			_, err := interceptor(incoming(tt.header), nil, &grpc.UnaryServerInfo{FullMethod: tt.method},
				func(ctx context.Context, req any) (any, error) {
					_, sawSession = SessionFromContext(ctx)
					return "ok", nil
				})

			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantAuth, sawSession)
		})
	}
}

func TestRateLimiter_PerCaller(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	interceptor := limiter.UnaryInterceptor(logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	info := &grpc.UnaryServerInfo{FullMethod: "/notes.v1.NotesService/SearchPosts"}
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	alice := ContextWithSession(context.Background(), &model.Session{Identity: model.Identity{Email: "alice@b.io"}})
	bob := ContextWithSession(context.Background(), &model.Session{Identity: model.Identity{Email: "bob@b.io"}})

	_, err := interceptor(alice, nil, info, ok)
	require.NoError(t, err)
	_, err = interceptor(alice, nil, info, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = interceptor(bob, nil, info, ok)
	assert.NoError(t, err, "buckets are per caller")
}

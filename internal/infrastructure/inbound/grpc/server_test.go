package delivery_grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	account_service "notes-blog-service/internal/application/service/account"
	post_service "notes-blog-service/internal/application/service/post"
	"notes-blog-service/internal/application/validator"
	"notes-blog-service/internal/custom_errors"
	delivery_grpc "notes-blog-service/internal/infrastructure/inbound/grpc"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
	notes_grpc "notes-blog-service/internal/infrastructure/inbound/grpc/notes"
	"notes-blog-service/internal/infrastructure/logger"
	memory_cache "notes-blog-service/internal/infrastructure/outbound/cache/memory"
	"notes-blog-service/internal/infrastructure/outbound/hasher"
	"notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	"notes-blog-service/internal/infrastructure/outbound/repository/recordstore"
	memory_store "notes-blog-service/internal/infrastructure/outbound/store/memory"
	"notes-blog-service/internal/infrastructure/outbound/tokens"
)

func startServer(t *testing.T, limiter *middleware.RateLimiter) *notes_grpc.NotesClient {
	t.Helper()
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	db := recordstore.NewDatabase(memory_store.NewStore(log, metrics), log, metrics)

	accounts := account_service.NewAccountService(db, db.UserRepository(), hasher.NewBcryptHasher(bcrypt.MinCost), log, metrics)
	posts := post_service.NewPostService(db.PostRepository(), db, log, metrics, 10)
	issuer := tokens.NewJWTIssuer("test-secret", time.Hour)
	blacklist := memory_cache.NewTokenBlacklist()

	api := notes_grpc.NewNotesGRPCService(accounts, posts, issuer, blacklist, log)
	server := delivery_grpc.NewServer(api, "", 0, log, delivery_grpc.Options{
		Tokens:    issuer,
		Blacklist: blacklist,
		RateLimit: limiter,
		Metrics:   metrics,
	})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return notes_grpc.NewNotesClient(conn)
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func registerAndLogin(t *testing.T, client *notes_grpc.NotesClient, email, username string) string {
	t.Helper()
	ctx := context.Background()
	_, err := client.Call(ctx, notes_grpc.MethodRegister, mustStruct(t, map[string]any{
		"email":                 email,
		"phone_number":          "+1 555 0100",
		"username":              username,
		"password":              "Secret123",
		"password_confirmation": "Secret123",
	}))
	require.NoError(t, err)

	resp, err := client.Call(ctx, notes_grpc.MethodLogin, mustStruct(t, map[string]any{
		"email":    email,
		"password": "Secret123",
	}))
	require.NoError(t, err)
	token := resp.GetFields()["token"].GetStringValue()
	require.NotEmpty(t, token)
	return token
}

func assertCode(t *testing.T, err error, want codes.Code) *status.Status {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, want, st.Code(), st.Message())
	return st
}

func TestServer_PostLifecycle(t *testing.T) {
	client := startServer(t, nil)
	ctx := context.Background()
	aliceToken := registerAndLogin(t, client, "alice@example.com", "alice")
	bobToken := registerAndLogin(t, client, "bob@example.com", "bob")

	_, err := client.Call(ctx, notes_grpc.MethodCreatePost, mustStruct(t, map[string]any{"title": "anonymous"}))
	assertCode(t, err, codes.Unauthenticated)

	created, err := client.Call(withToken(ctx, aliceToken), notes_grpc.MethodCreatePost, mustStruct(t, map[string]any{
		"title": "First",
		"body":  "hello world",
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), created.GetFields()["id"].GetNumberValue())
	assert.Equal(t, "alice", created.GetFields()["author"].GetStringValue())

	_, err = client.Call(withToken(ctx, aliceToken), notes_grpc.MethodCreatePost, mustStruct(t, map[string]any{"title": ""}))
	st := assertCode(t, err, codes.InvalidArgument)
	assert.Equal(t, validator.MsgPostTitleRequired, st.Message())

	got, err := client.Call(ctx, notes_grpc.MethodGetPost, mustStruct(t, map[string]any{"id": 1}))
	require.NoError(t, err)
	assert.Equal(t, "First", got.GetFields()["title"].GetStringValue())

	_, err = client.Call(ctx, notes_grpc.MethodGetPost, mustStruct(t, map[string]any{"id": 0}))
	st = assertCode(t, err, codes.InvalidArgument)
	assert.Equal(t, "invalid request", st.Message())

	_, err = client.Call(ctx, notes_grpc.MethodGetPost, mustStruct(t, map[string]any{"id": 1.5}))
	assertCode(t, err, codes.InvalidArgument)

	_, err = client.Call(ctx, notes_grpc.MethodGetPost, mustStruct(t, map[string]any{"id": 42}))
	assertCode(t, err, codes.NotFound)

	_, err = client.Call(withToken(ctx, bobToken), notes_grpc.MethodUpdatePost, mustStruct(t, map[string]any{"id": 1, "title": "stolen"}))
	assertCode(t, err, codes.PermissionDenied)

	updated, err := client.Call(withToken(ctx, aliceToken), notes_grpc.MethodUpdatePost, mustStruct(t, map[string]any{"id": 1, "title": "First (edited)", "body": "hello world"}))
	require.NoError(t, err)
	assert.NotEmpty(t, updated.GetFields()["updated_at"].GetStringValue())

	page, err := client.Call(ctx, notes_grpc.MethodListPosts, mustStruct(t, map[string]any{}))
	require.NoError(t, err)
	assert.Len(t, page.GetFields()["items"].GetListValue().GetValues(), 1)
	assert.Equal(t, float64(1), page.GetFields()["number"].GetNumberValue())
	assert.False(t, page.GetFields()["out_of_range"].GetBoolValue())

	page, err = client.Call(ctx, notes_grpc.MethodListPosts, mustStruct(t, map[string]any{"page": 2}))
	require.NoError(t, err)
	assert.True(t, page.GetFields()["out_of_range"].GetBoolValue())

	_, err = client.Call(ctx, notes_grpc.MethodListPosts, mustStruct(t, map[string]any{"page_size": 1000}))
	assertCode(t, err, codes.InvalidArgument)

	found, err := client.Call(ctx, notes_grpc.MethodSearchPosts, mustStruct(t, map[string]any{"keyword": "world"}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), found.GetFields()["count"].GetNumberValue())

	byAuthor, err := client.Call(ctx, notes_grpc.MethodListPostsByAuthor, mustStruct(t, map[string]any{"author_email": "bob@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, float64(0), byAuthor.GetFields()["count"].GetNumberValue())

	_, err = client.Call(withToken(ctx, bobToken), notes_grpc.MethodDeletePost, mustStruct(t, map[string]any{"id": 1}))
	assertCode(t, err, codes.PermissionDenied)

	_, err = client.Call(withToken(ctx, aliceToken), notes_grpc.MethodDeletePost, mustStruct(t, map[string]any{"id": 1}))
	require.NoError(t, err)

	_, err = client.Call(ctx, notes_grpc.MethodGetPost, mustStruct(t, map[string]any{"id": 1}))
	assertCode(t, err, codes.NotFound)
}

func TestServer_Accounts(t *testing.T) {
	client := startServer(t, nil)
	ctx := context.Background()
	token := registerAndLogin(t, client, "alice@example.com", "alice")

	_, err := client.Call(ctx, notes_grpc.MethodRegister, mustStruct(t, map[string]any{
		"email":                 "alice@example.com",
		"phone_number":          "123456",
		"username":              "alice2",
		"password":              "Secret123",
		"password_confirmation": "Secret123",
	}))
	assertCode(t, err, codes.AlreadyExists)

	_, err = client.Call(ctx, notes_grpc.MethodRegister, mustStruct(t, map[string]any{
		"email":                 "carol@example.com",
		"phone_number":          "123456",
		"username":              "carol",
		"password":              "Secret123",
		"password_confirmation": "Secret124",
	}))
	st := assertCode(t, err, codes.InvalidArgument)
	assert.Equal(t, validator.MsgPasswordMismatch, st.Message())

	_, unknownErr := client.Call(ctx, notes_grpc.MethodLogin, mustStruct(t, map[string]any{"email": "nobody@example.com", "password": "Secret123"}))
	_, wrongErr := client.Call(ctx, notes_grpc.MethodLogin, mustStruct(t, map[string]any{"email": "alice@example.com", "password": "Secret999"}))
	unknown := assertCode(t, unknownErr, codes.Unauthenticated)
	wrong := assertCode(t, wrongErr, codes.Unauthenticated)
	assert.Equal(t, unknown.Message(), wrong.Message())
	assert.Equal(t, custom_errors.ErrInvalidCredentials.Error(), wrong.Message())

	_, err = client.Call(withToken(ctx, "garbage"), notes_grpc.MethodCreatePost, mustStruct(t, map[string]any{"title": "x"}))
	assertCode(t, err, codes.Unauthenticated)

	_, err = client.Call(withToken(ctx, token), notes_grpc.MethodLogout, nil)
	require.NoError(t, err)

	_, err = client.Call(withToken(ctx, token), notes_grpc.MethodCreatePost, mustStruct(t, map[string]any{"title": "after logout"}))
	assertCode(t, err, codes.Unauthenticated)

	_, err = client.Call(ctx, notes_grpc.MethodLogout, nil)
	assertCode(t, err, codes.Unauthenticated)
}

func TestServer_RateLimit(t *testing.T) {
	client := startServer(t, middleware.NewRateLimiter(0.001, 2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Call(ctx, notes_grpc.MethodSearchPosts, nil)
		require.NoError(t, err)
	}
	_, err := client.Call(ctx, notes_grpc.MethodSearchPosts, nil)
	assertCode(t, err, codes.ResourceExhausted)
}

func TestServer_RequestIDHeader(t *testing.T) {
	client := startServer(t, nil)
	var header metadata.MD

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-request-id", "req-123")
	_, err := client.Call(ctx, notes_grpc.MethodSearchPosts, nil, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"req-123"}, header.Get("x-request-id"))
}

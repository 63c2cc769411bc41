package notes_grpc

import (
	"context"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	account_service "notes-blog-service/internal/domain/ports/input/account"
	post_service "notes-blog-service/internal/domain/ports/input/post"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
)

var validate = validator.New()

type NotesGRPCService struct {
	registerHandler   *RegisterHandler
	loginHandler      *LoginHandler
	logoutHandler     *LogoutHandler
	createPostHandler *CreatePostHandler
	getPostHandler    *GetPostHandler
	listPostsHandler  *ListPostsHandler
	updatePostHandler *UpdatePostHandler
	deletePostHandler *DeletePostHandler
}

func NewNotesGRPCService(
	accountService account_service.Service,
	postService post_service.Service,
	tokens ports.TokenIssuer,
	blacklist cache.TokenBlacklist,
	log ports.Logger,
) *NotesGRPCService {
	return &NotesGRPCService{
		registerHandler:   NewRegisterHandler(accountService, log),
		loginHandler:      NewLoginHandler(accountService, tokens, log),
		logoutHandler:     NewLogoutHandler(blacklist, log),
		createPostHandler: NewCreatePostHandler(postService, log),
		getPostHandler:    NewGetPostHandler(postService, validate, log),
		listPostsHandler:  NewListPostsHandler(postService, validate, log),
		updatePostHandler: NewUpdatePostHandler(postService, validate, log),
		deletePostHandler: NewDeletePostHandler(postService, validate, log),
	}
}

func (s *NotesGRPCService) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.registerHandler.Register(ctx, req)
}

func (s *NotesGRPCService) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.loginHandler.Login(ctx, req)
}

func (s *NotesGRPCService) Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.logoutHandler.Logout(ctx, req)
}

func (s *NotesGRPCService) CreatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.createPostHandler.CreatePost(ctx, req)
}

func (s *NotesGRPCService) GetPost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.getPostHandler.GetPost(ctx, req)
}

func (s *NotesGRPCService) ListPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.listPostsHandler.ListPosts(ctx, req)
}

func (s *NotesGRPCService) ListPostsByAuthor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.listPostsHandler.ListPostsByAuthor(ctx, req)
}

func (s *NotesGRPCService) SearchPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.listPostsHandler.SearchPosts(ctx, req)
}

func (s *NotesGRPCService) UpdatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.updatePostHandler.UpdatePost(ctx, req)
}

func (s *NotesGRPCService) DeletePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.deletePostHandler.DeletePost(ctx, req)
}

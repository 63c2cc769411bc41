package notes_grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "notes.v1.NotesService"

const (
	MethodRegister          = "/" + ServiceName + "/Register"
	MethodLogin             = "/" + ServiceName + "/Login"
	MethodLogout            = "/" + ServiceName + "/Logout"
	MethodCreatePost        = "/" + ServiceName + "/CreatePost"
	MethodGetPost           = "/" + ServiceName + "/GetPost"
	MethodListPosts         = "/" + ServiceName + "/ListPosts"
	MethodListPostsByAuthor = "/" + ServiceName + "/ListPostsByAuthor"
	MethodSearchPosts       = "/" + ServiceName + "/SearchPosts"
	MethodUpdatePost        = "/" + ServiceName + "/UpdatePost"
	MethodDeletePost        = "/" + ServiceName + "/DeletePost"
)

// ProtectedMethods require a valid session token.
var ProtectedMethods = map[string]bool{
	MethodLogout:     true,
	MethodCreatePost: true,
	MethodUpdatePost: true,
	MethodDeletePost: true,
}

// NotesServer is the server API for notes.v1.NotesService. Every message is a
// google.protobuf.Struct.
type NotesServer interface {
	Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CreatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetPost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListPostsByAuthor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SearchPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdatePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeletePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(NotesServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(NotesServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(NotesServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

var NotesServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotesServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Register", NotesServer.Register),
		unaryMethod("Login", NotesServer.Login),
		unaryMethod("Logout", NotesServer.Logout),
		unaryMethod("CreatePost", NotesServer.CreatePost),
		unaryMethod("GetPost", NotesServer.GetPost),
		unaryMethod("ListPosts", NotesServer.ListPosts),
		unaryMethod("ListPostsByAuthor", NotesServer.ListPostsByAuthor),
		unaryMethod("SearchPosts", NotesServer.SearchPosts),
		unaryMethod("UpdatePost", NotesServer.UpdatePost),
		unaryMethod("DeletePost", NotesServer.DeletePost),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notes/v1/notes.proto",
}

func RegisterNotesServer(s grpc.ServiceRegistrar, srv NotesServer) {
	s.RegisterService(&NotesServiceDesc, srv)
}

// NotesClient invokes notes.v1.NotesService methods by full name.
type NotesClient struct {
	cc grpc.ClientConnInterface
}

func NewNotesClient(cc grpc.ClientConnInterface) *NotesClient {
	return &NotesClient{cc: cc}
}

func (c *NotesClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

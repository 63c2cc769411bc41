package delivery_grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
	notes_grpc "notes-blog-service/internal/infrastructure/inbound/grpc/notes"
)

type Server struct {
	notesGRPCService *notes_grpc.NotesGRPCService
	server           *grpc.Server
	address          string
	port             int
	log              ports.Logger
}

type Options struct {
	Tokens    ports.TokenIssuer
	Blacklist cache.TokenBlacklist
	RateLimit *middleware.RateLimiter
	Metrics   ports.MetricsProvider
}

func NewServer(notesGRPCService *notes_grpc.NotesGRPCService, address string, port int, log ports.Logger, opts Options) *Server {
	s := &Server{
		notesGRPCService: notesGRPCService,
		address:          address,
		port:             port,
		log:              log,
	}

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.UnaryLoggerInterceptor(log, opts.Metrics),
		grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(func(p any) error {
			log.Error("Recovered from panic", slog.Any("panic", p))
			return status.Error(codes.Internal, "internal error")
		})),
		middleware.UnaryAuthInterceptor(opts.Tokens, opts.Blacklist, notes_grpc.ProtectedMethods, log),
	}
	if opts.RateLimit != nil {
		interceptors = append(interceptors, opts.RateLimit.UnaryInterceptor(log, opts.Metrics))
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(interceptors...)),
	)
	notes_grpc.RegisterNotesServer(s.server, s.notesGRPCService)
	return s
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("Starting gRPC server", slog.String("address", lis.Addr().String()))
	return s.server.Serve(lis)
}

func (s *Server) Shutdown() error {
	if s.server != nil {
		s.server.GracefulStop()
	}
	return nil
}

package notes_grpc

import (
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
)

var errInvalidRequest = status.Error(codes.InvalidArgument, "invalid request")

// toStatus maps a service error onto a gRPC status. Validation messages are shown
// verbatim; anything unexpected is logged and reported as a generic internal error.
func toStatus(log ports.Logger, op string, err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return status.Error(codes.NotFound, custom_errors.ErrPostNotFound.Error())
	case errors.Is(err, custom_errors.ErrUserNotFound):
		return status.Error(codes.NotFound, custom_errors.ErrUserNotFound.Error())
	case errors.Is(err, custom_errors.ErrForbidden):
		return status.Error(codes.PermissionDenied, custom_errors.ErrForbidden.Error())
	case errors.Is(err, custom_errors.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, custom_errors.ErrInvalidCredentials.Error())
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, custom_errors.ErrUnauthenticated.Error())
	case errors.Is(err, custom_errors.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, custom_errors.ErrInvalidToken.Error())
	case errors.Is(err, custom_errors.ErrUserExists):
		return status.Error(codes.AlreadyExists, custom_errors.ErrUserExists.Error())
	default:
		log.Error("Request failed", slog.String("operation", op), slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

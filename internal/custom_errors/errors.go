package custom_errors

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("action not allowed for this user")
	ErrInvalidCredentials = errors.New("user not found or incorrect credentials")
	ErrUserExists         = errors.New("account already exists")
	ErrStorage            = errors.New("storage failure")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrCacheMiss          = errors.New("cache miss")
	ErrUnknownOperation   = errors.New("unknown post operation")
	ErrTxClosed           = errors.New("transaction already closed")
	ErrReadOnlyTx         = errors.New("write attempted in read-only transaction")
)

// ValidationError is a displayable input error. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

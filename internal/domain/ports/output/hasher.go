package ports

// PasswordHasher is the opaque hash-and-verify capability.
// Verify returns custom_errors.ErrInvalidCredentials when the password does not match.
//
//go:generate mockery --name PasswordHasher --dir . --output ../../../../mocks --outpkg mocks --filename PasswordHasher.go
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

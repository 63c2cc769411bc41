package ports

import model "notes-blog-service/internal/domain/models"

// TokenIssuer turns an Identity into a signed bearer token and back.
// Parse returns custom_errors.ErrInvalidToken for malformed, forged or expired tokens.
//
//go:generate mockery --name TokenIssuer --dir . --output ../../../../mocks --outpkg mocks --filename TokenIssuer.go
type TokenIssuer interface {
	Issue(identity model.Identity) (string, *model.Session, error)
	Parse(token string) (*model.Session, error)
}

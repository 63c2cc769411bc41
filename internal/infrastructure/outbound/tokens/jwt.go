package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
)

const issuer = "notes-blog-service"

type claims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens whose subject is the user's email.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(identity model.Identity) (string, *model.Session, error) {
	now := j.now()
	session := &model.Session{
		TokenID:   uuid.NewString(),
		Identity:  identity,
		ExpiresAt: now.Add(j.ttl).Truncate(time.Second),
	}
	c := claims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			Subject:   identity.Email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, session, nil
}

func (j *JWTIssuer) Parse(token string) (*model.Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", custom_errors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrInvalidToken, err)
	}
	if !parsed.Valid || c.Subject == "" || c.ID == "" {
		return nil, custom_errors.ErrInvalidToken
	}
	return &model.Session{
		TokenID:   c.ID,
		Identity:  model.Identity{Email: c.Subject, Username: c.Username},
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

package ports

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veridian/identity-service/internal/core/domain"
)

// Token type claim values. The type check during validation is the guard
// that keeps a refresh token from being replayed as an access token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed payload of every token issued by this service. The
// subject is always the user UUID, never the mutable username.
type Claims struct {
	jwt.RegisteredClaims
	Type  string   `json:"type"`
	Scope []string `json:"scope,omitempty"`
}

// TokenService issues and validates stateless signed bearer tokens.
type TokenService interface {
	IssueAccess(principal *domain.Principal) (string, error)
	IssueRefresh(principal *domain.Principal) (string, error)
	Validate(raw, expectedType string) (*Claims, error)
	RefreshAccess(ctx context.Context, rawRefresh string) (string, error)
}

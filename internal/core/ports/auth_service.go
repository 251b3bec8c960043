package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// AuthService verifies a raw credential pair and returns a normalized
// principal. Every failure surfaces as domain.ErrBadCredentials.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

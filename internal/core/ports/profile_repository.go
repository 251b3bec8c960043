package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// ProfileRepository defines the interface for profile persistence. The store
// must enforce the one-profile-per-user invariant with a unique index on the
// user UUID.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByUserUUID(ctx context.Context, userUUID string) (*domain.Profile, error)
}

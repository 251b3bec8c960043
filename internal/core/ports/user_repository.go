package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// UserRepository defines the interface for durable user persistence. The
// store must enforce username and email uniqueness atomically (unique
// indexes); the service-level pre-checks are an optimization only.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByUUID(ctx context.Context, uuid string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// DeleteByUUID returns the number of records removed (0 or 1).
	DeleteByUUID(ctx context.Context, uuid string) (int64, error)
}

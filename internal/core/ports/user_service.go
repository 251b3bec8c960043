package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// RegisterInput carries the fields required to create a user account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// UpdateInput carries the mutable fields of a user record. The UUID and
// password are never updated through this path.
type UpdateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// UserService is the user directory: it owns user records, role assignment,
// and UUID-based identity.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, error)
	Update(ctx context.Context, uuid string, in UpdateInput) (*domain.Principal, error)
	Delete(ctx context.Context, uuid string) error
	LoadByUsername(ctx context.Context, username string) (*domain.Principal, error)
	LoadByUUID(ctx context.Context, uuid string) (*domain.Principal, error)
}

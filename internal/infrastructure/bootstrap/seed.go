// Package bootstrap seeds the data every deployment depends on: the two
// roles and the initial admin account. Registration fails closed when the
// default role is missing, so seeding must complete before the server
// listens.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// Seed ensures ROLE_ADMIN and ROLE_USER exist and creates the admin account
// when absent. Re-running against a seeded store is a no-op.
func Seed(ctx context.Context, users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, admin AdminAccount, log zerolog.Logger) error {
	adminRole, err := ensureRole(ctx, roles, domain.RoleAdmin, log)
	if err != nil {
		return err
	}
	if _, err := ensureRole(ctx, roles, domain.RoleUser, log); err != nil {
		return err
	}

	exists, err := users.ExistsByUsername(ctx, admin.Username)
	if err != nil {
		return fmt.Errorf("seed: check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UUID:         uuid.NewString(),
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         *adminRole,

		Enabled:               true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,

		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := users.Create(ctx, user)
	if err != nil {
		return fmt.Errorf("seed: create admin account: %w", err)
	}

	log.Info().Str("username", created.Username).Str("uuid", created.UUID).Msg("admin account created")
	return nil
}

func ensureRole(ctx context.Context, roles ports.RoleRepository, name string, log zerolog.Logger) (*domain.Role, error) {
	role, err := roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, fmt.Errorf("seed: find role %s: %w", name, err)
	}

	role, err = roles.Create(ctx, &domain.Role{
		UUID:      uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("seed: create role %s: %w", name, err)
	}

	log.Info().Str("role", name).Msg("role created")
	return role, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// UserService is the user directory. It owns registration, updates, deletion,
// and principal lookups, and publishes UserCreated after a registration
// commits.
type UserService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	validator *CredentialValidator
	hasher    ports.PasswordHasher
	bus       ports.EventBus
	log       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	validator *CredentialValidator,
	hasher ports.PasswordHasher,
	bus ports.EventBus,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		roles:     roles,
		validator: validator,
		hasher:    hasher,
		bus:       bus,
		log:       log,
	}
}

// Register creates a user with a fresh UUID, hashed password, the default
// role, and all account-status flags set. The UserCreated event is published
// only after the durable write succeeds.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	if err := s.validator.ValidateForRegistration(ctx, in.Username, in.Email, in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		// The default role must exist before any registration; its absence is
		// an invariant violation, not a client error.
		s.log.Error().Err(err).Str("role", domain.RoleUser).Msg("default role missing")
		return nil, fmt.Errorf("register: %w: default role %s missing", domain.ErrServer, domain.RoleUser)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UUID:         uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         *role,

		Enabled:               true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,

		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Publish strictly after the commit so subscribers never observe a user
	// that a concurrent read cannot yet see.
	s.bus.Publish(domain.UserCreated{User: created, OccurredAt: time.Now().UTC()})

	s.log.Info().Str("username", created.Username).Str("uuid", created.UUID).Msg("user registered")
	return domain.NewPrincipal(created), nil
}

// Update changes the mutable fields of the user identified by uuid.
// Self-collision on username or email is permitted.
func (s *UserService) Update(ctx context.Context, userUUID string, in ports.UpdateInput) (*domain.Principal, error) {
	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateForUpdate(ctx, user, in.Username, in.Email); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("uuid", userUUID).Msg("user updated")
	return domain.NewPrincipal(updated), nil
}

// Delete removes the user identified by uuid. Deleting an unknown UUID fails
// with ErrUserNotFound and performs no write.
func (s *UserService) Delete(ctx context.Context, userUUID string) error {
	count, err := s.users.DeleteByUUID(ctx, userUUID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if count == 0 {
		return domain.ErrUserNotFound
	}

	s.log.Info().Str("uuid", userUUID).Msg("user deleted")
	return nil
}

func (s *UserService) LoadByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return domain.NewPrincipal(user), nil
}

func (s *UserService) LoadByUUID(ctx context.Context, userUUID string) (*domain.Principal, error) {
	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	return domain.NewPrincipal(user), nil
}

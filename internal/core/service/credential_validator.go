package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// CredentialValidator runs the fail-fast registration and update checks:
// password confirmation, username/email uniqueness, compromised-password
// rejection.
type CredentialValidator struct {
	users       ports.UserRepository
	compromised ports.CompromisedChecker
	log         zerolog.Logger
}

func NewCredentialValidator(users ports.UserRepository, compromised ports.CompromisedChecker, log zerolog.Logger) *CredentialValidator {
	return &CredentialValidator{users: users, compromised: compromised, log: log}
}

// ValidateForRegistration checks, in order: password confirmation match,
// username uniqueness, email uniqueness, compromised-password membership.
// The first failing check wins.
func (v *CredentialValidator) ValidateForRegistration(ctx context.Context, username, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	if err := v.checkUnique(ctx, username, email); err != nil {
		return err
	}

	// A broken corpus must not block registration: fail open with a warning.
	isCompromised, err := v.compromised.IsCompromised(ctx, password)
	if err != nil {
		v.log.Warn().Err(err).Str("username", username).Msg("compromised-password check failed, allowing registration")
	} else if isCompromised {
		return domain.ErrCompromisedPassword
	}

	return nil
}

// ValidateForUpdate runs the uniqueness checks against all *other* users:
// a value equal to the current user's own is always permitted.
func (v *CredentialValidator) ValidateForUpdate(ctx context.Context, current *domain.User, username, email string) error {
	if username != current.Username {
		taken, err := v.users.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("validate update: %w", err)
		}
		if taken {
			return domain.ErrDuplicateUsername
		}
	}

	if email != current.Email {
		taken, err := v.users.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("validate update: %w", err)
		}
		if taken {
			return domain.ErrDuplicateEmail
		}
	}

	return nil
}

func (v *CredentialValidator) checkUnique(ctx context.Context, username, email string) error {
	taken, err := v.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("validate registration: %w", err)
	}
	if taken {
		return domain.ErrDuplicateUsername
	}

	taken, err = v.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("validate registration: %w", err)
	}
	if taken {
		return domain.ErrDuplicateEmail
	}

	return nil
}

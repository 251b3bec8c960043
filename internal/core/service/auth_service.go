package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// dummyHash is a valid bcrypt digest of a random string. It is compared
// against when the username is unknown so the two rejection paths cost the
// same amount of work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService is the authentication gate: it verifies a credential pair
// against the directory and returns a normalized principal.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, log: log}
}

// Authenticate verifies username and password. Unknown username, wrong
// password, and a disabled or locked account all fail with ErrBadCredentials;
// the caller can never tell which it was.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison against a dummy hash so this path takes the
			// same time as a wrong-password rejection.
			s.hasher.Verify(password, dummyHash)
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("password mismatch")
		return nil, domain.ErrBadCredentials
	}

	if !user.Active() {
		s.log.Warn().Str("username", username).Msg("authentication rejected for inactive account")
		return nil, domain.ErrBadCredentials
	}

	return domain.NewPrincipal(user), nil
}

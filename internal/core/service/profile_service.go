package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// ProfileService materializes the derived profile record after registration.
// It runs off the registration request's critical path, subscribed to
// UserCreated; delivery is at-least-once so the handler is idempotent.
type ProfileService struct {
	profiles ports.ProfileRepository
	created  ports.Counter
	log      zerolog.Logger
}

// NewProfileService wires the profile store and a counter incremented once
// per profile actually created. Redeliveries and lost races do not count.
func NewProfileService(profiles ports.ProfileRepository, created ports.Counter, log zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, created: created, log: log}
}

// HandleUserCreated creates the profile for a freshly registered user. A
// profile that already exists (from a redelivered event) is a no-op, not a
// duplicate.
func (s *ProfileService) HandleUserCreated(ctx context.Context, evt domain.UserCreated) error {
	if _, err := s.profiles.FindByUserUUID(ctx, evt.User.UUID); err == nil {
		s.log.Debug().Str("user_uuid", evt.User.UUID).Msg("profile already exists, skipping")
		return nil
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}

	profile := &domain.Profile{
		UUID:      uuid.NewString(),
		UserUUID:  evt.User.UUID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.profiles.Create(ctx, profile); err != nil {
		// The unique index on user_uuid arbitrates concurrent deliveries; a
		// duplicate insert means another delivery won the race.
		if errors.Is(err, domain.ErrProfileExists) {
			return nil
		}
		return err
	}

	s.created.Inc()
	s.log.Info().Str("user_uuid", evt.User.UUID).Str("profile_uuid", profile.UUID).Msg("profile created")
	return nil
}

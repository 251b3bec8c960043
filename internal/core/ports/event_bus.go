package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// UserCreatedHandler processes a single UserCreated event. Handlers are
// invoked at least once and must tolerate replays.
type UserCreatedHandler interface {
	HandleUserCreated(ctx context.Context, evt domain.UserCreated) error
}

// EventBus decouples registration from its asynchronous side effects. Publish
// must be called only after the triggering write has committed.
type EventBus interface {
	Publish(evt domain.UserCreated)
	Subscribe(handler UserCreatedHandler)
}

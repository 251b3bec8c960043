package domain

import "time"

// UserCreated is published after a registration commits. Subscribers receive
// it at least once and must be idempotent.
type UserCreated struct {
	User       *User
	OccurredAt time.Time
}

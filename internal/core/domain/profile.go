package domain

import "time"

// Profile is a 1:1 record derived from a user, created asynchronously after
// registration. At most one profile exists per user.
type Profile struct {
	ID        string    `json:"-"`
	UUID      string    `json:"uuid"`
	UserUUID  string    `json:"user_uuid"`
	CreatedAt time.Time `json:"created_at"`
}

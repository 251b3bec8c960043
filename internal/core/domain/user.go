package domain

import "time"

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Role is a fixed, named authority referenced by many users.
type Role struct {
	ID        string    `json:"-"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the core identity record. The internal ID is storage-assigned; the
// UUID is assigned exactly once at construction and is the only identifier
// that ever appears in tokens, so a username change never invalidates them.
type User struct {
	ID           string `json:"-"`
	UUID         string `json:"uuid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `json:"role"`

	Enabled               bool `json:"enabled"`
	CredentialsNonExpired bool `json:"credentials_non_expired"`
	AccountNonLocked      bool `json:"account_non_locked"`
	AccountNonExpired     bool `json:"account_non_expired"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether every account-status flag permits authentication.
func (u *User) Active() bool {
	return u.Enabled && u.CredentialsNonExpired && u.AccountNonLocked && u.AccountNonExpired
}

// Principal is the normalized authenticated identity handed to authorization
// decisions and to the token service. It never carries the password hash.
type Principal struct {
	UUID        string   `json:"uuid"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Enabled     bool     `json:"enabled"`
	Authorities []string `json:"authorities"`
}

// NewPrincipal builds a Principal from a user record, deriving authorities
// from the attached role.
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Enabled:     u.Active(),
		Authorities: []string{u.Role.Name},
	}
}

package handler

import "github.com/veridian/identity-service/internal/core/domain"

// registerRequest carries a new account's details. ConfirmPassword must
// match Password; the deeper equality check (and uniqueness, compromise)
// lives in the core validator.
type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required,max=64"`
	LastName        string `json:"last_name" validate:"required,max=64"`
}

// updateUserRequest carries the mutable fields of an account.
type updateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
}

// principalResponse is the public projection of an identity.
type principalResponse struct {
	UUID        string   `json:"uuid"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Enabled     bool     `json:"enabled"`
	Authorities []string `json:"authorities"`
}

func toPrincipalResponse(p *domain.Principal) principalResponse {
	return principalResponse{
		UUID:        p.UUID,
		Username:    p.Username,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Enabled:     p.Enabled,
		Authorities: p.Authorities,
	}
}

package handler

// loginRequest carries the raw credential pair.
type loginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// loginResponse returns the freshly issued token pair.
type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshRequest presents a refresh token for exchange.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshResponse returns the new access token.
type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

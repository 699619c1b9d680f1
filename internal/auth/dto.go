package auth

import (
	"github.com/HoaDang0803/ShineOn/internal/users"
)

// RegisterRequest captures the payload for email/password sign-up.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FederatedRequest carries the external provider's ID token.
type FederatedRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshRequest carries the expired access token and the refresh token to
// rotate.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains the token pair and user produced by any sign-in path.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Provider identifies how the session was established.
type Provider string

const (
	ProviderPassword  Provider = "password"
	ProviderAnonymous Provider = "anonymous"
	ProviderFederated Provider = "federated"
)

func (p Provider) IsValid() bool {
	switch p {
	case ProviderPassword, ProviderAnonymous, ProviderFederated:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Provider Provider
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Provider Provider  `json:"provider"`
	jwt.RegisteredClaims
}

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/HoaDang0803/ShineOn/pkg/config"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// FederatedIdentity is the verified identity extracted from an external
// provider's ID token.
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
}

// FederatedVerifier validates an external ID token and returns the identity
// it asserts.
type FederatedVerifier interface {
	Verify(ctx context.Context, idToken string) (*FederatedIdentity, error)
}

type federatedClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// hmacVerifier validates provider ID tokens signed with a shared HS256 secret.
type hmacVerifier struct {
	secret string
	issuer string
}

// NewFederatedVerifier builds the default verifier from the federated
// provider config.
func NewFederatedVerifier(cfg config.FederatedConfig) (FederatedVerifier, error) {
	if strings.TrimSpace(cfg.ProviderSecret) == "" {
		return nil, fmt.Errorf("federated provider secret is required")
	}
	if strings.TrimSpace(cfg.ProviderIssuer) == "" {
		return nil, fmt.Errorf("federated provider issuer is required")
	}
	return &hmacVerifier{secret: cfg.ProviderSecret, issuer: cfg.ProviderIssuer}, nil
}

func (v *hmacVerifier) Verify(ctx context.Context, idToken string) (*FederatedIdentity, error) {
	claims := &federatedClaims{}
	_, err := jwt.ParseWithClaims(
		idToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(v.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid provider token")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "provider token has no subject")
	}

	return &FederatedIdentity{
		Subject: subject,
		Email:   strings.ToLower(strings.TrimSpace(claims.Email)),
		Name:    strings.TrimSpace(claims.Name),
	}, nil
}

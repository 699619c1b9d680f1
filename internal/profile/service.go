package profile

import (
	"context"
	"strings"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

type profileStore interface {
	SetProfile(ctx context.Context, userID uuid.UUID, profile appstate.Profile) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*appstate.Profile, error)
}

// Service exposes the per-user profile document.
type Service interface {
	Save(ctx context.Context, userID uuid.UUID, profile appstate.Profile) error
	Get(ctx context.Context, userID uuid.UUID) (*appstate.Profile, error)
}

type service struct {
	store profileStore
}

// NewService builds the profile service over the user store.
func NewService(store profileStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile store is required")
	}
	return &service{store: store}, nil
}

// Save overwrites the whole profile document. Fields absent from the payload
// are dropped, not merged.
func (s *service) Save(ctx context.Context, userID uuid.UUID, profile appstate.Profile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "profile name is required")
	}
	return s.store.SetProfile(ctx, userID, profile)
}

// Get returns the stored profile, or nil when the user has never saved one.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*appstate.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

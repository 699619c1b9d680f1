package profile

import (
	"context"
	"testing"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

type stubProfileStore struct {
	stored map[uuid.UUID]appstate.Profile
}

func newStubProfileStore() *stubProfileStore {
	return &stubProfileStore{stored: make(map[uuid.UUID]appstate.Profile)}
}

func (s *stubProfileStore) SetProfile(ctx context.Context, userID uuid.UUID, profile appstate.Profile) error {
	s.stored[userID] = profile
	return nil
}

func (s *stubProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*appstate.Profile, error) {
	p, ok := s.stored[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	store := newStubProfileStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.Save(ctx, userID, appstate.Profile{Name: "Hoa", Phone: "0900"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Save(ctx, userID, appstate.Profile{Name: "Hoa"}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phone != "" {
		t.Fatalf("expected wholesale overwrite, got %+v", got)
	}
}

func TestSaveRequiresName(t *testing.T) {
	svc, err := NewService(newStubProfileStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	saveErr := svc.Save(context.Background(), uuid.New(), appstate.Profile{})
	if !pkgerrors.IsCode(saveErr, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", saveErr)
	}
}

func TestGetAbsentProfileReturnsNil(t *testing.T) {
	svc, err := NewService(newStubProfileStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
)

type stubProfileService struct {
	profile *appstate.Profile
	saved   *appstate.Profile
	err     error
}

func (s *stubProfileService) Save(_ context.Context, _ uuid.UUID, profile appstate.Profile) error {
	s.saved = &profile
	return s.err
}

func (s *stubProfileService) Get(context.Context, uuid.UUID) (*appstate.Profile, error) {
	return s.profile, s.err
}

func TestProfileGetReturnsEmptyObjectWhenUnsaved(t *testing.T) {
	svc := &stubProfileService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()

	ProfileGet(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data appstate.Profile `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Name != "" {
		t.Fatalf("expected empty profile, got %#v", envelope.Data)
	}
}

func TestProfileSaveOverwritesDocument(t *testing.T) {
	svc := &stubProfileService{}

	body := `{"name":"Hoa","surname":"Dang","email":"hoa@example.com","phone":"0901234567","address":"Hanoi","image_url":"https://cdn.example.com/a.png"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ProfileSave(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.saved == nil || svc.saved.Name != "Hoa" || svc.saved.Address != "Hanoi" {
		t.Fatalf("unexpected saved profile %#v", svc.saved)
	}
}

func TestProfileSaveRequiresName(t *testing.T) {
	svc := &stubProfileService{}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"surname":"Dang"}`))
	rec := httptest.NewRecorder()

	ProfileSave(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.saved != nil {
		t.Fatal("invalid payload must not reach the service")
	}
}

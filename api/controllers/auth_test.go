package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/HoaDang0803/ShineOn/api/middleware"
	authsvc "github.com/HoaDang0803/ShineOn/internal/auth"
	"github.com/HoaDang0803/ShineOn/internal/users"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
)

type stubAuthService struct {
	resp *authsvc.AuthResponse
	err  error

	loggedOutUser   uuid.UUID
	loggedOutAccess string
}

func (s *stubAuthService) Register(context.Context, authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Anonymous(context.Context) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Federated(context.Context, authsvc.FederatedRequest) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Refresh(context.Context, authsvc.RefreshRequest) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Logout(_ context.Context, userID uuid.UUID, accessID string) error {
	s.loggedOutUser = userID
	s.loggedOutAccess = accessID
	return s.err
}

func authResponseFixture() *authsvc.AuthResponse {
	return &authsvc.AuthResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &users.UserDTO{ID: uuid.New(), Username: "tester", Provider: "password"},
	}
}

func TestRegisterReturns201(t *testing.T) {
	svc := &stubAuthService{resp: authResponseFixture()}

	body := `{"username":"tester","email":"tester@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	Register(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var envelope struct {
		Data authsvc.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.AccessToken != "access" {
		t.Fatalf("unexpected payload %#v", envelope.Data)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := &stubAuthService{resp: authResponseFixture()}

	body := `{"username":"tester","email":"tester@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	Register(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}

	body := `{"email":"tester@example.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	Login(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAnonymousLogin(t *testing.T) {
	svc := &stubAuthService{resp: authResponseFixture()}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil)
	rec := httptest.NewRecorder()

	AnonymousLogin(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRefreshRequiresBothTokens(t *testing.T) {
	svc := &stubAuthService{resp: authResponseFixture()}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"access_token":"only"}`))
	rec := httptest.NewRecorder()

	Refresh(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogoutUsesContextIdentity(t *testing.T) {
	svc := &stubAuthService{}
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithAccessID(ctx, "access-123")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	Logout(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loggedOutUser != userID || svc.loggedOutAccess != "access-123" {
		t.Fatalf("logout called with %s %s", svc.loggedOutUser, svc.loggedOutAccess)
	}
}

func TestLogoutWithoutAccessIDReturns401(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	Logout(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

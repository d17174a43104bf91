package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error

	lastRegister ports.RegisterInput
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.lastRegister = input
	return s.user, s.err
}

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) RefreshToken(_, _ string) (string, error) {
	return s.token, s.err
}

func newTestContext(method, path, body, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		token: "jwt-token",
		user:  &domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleClient},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"longenough"}`, echo.MIMEApplicationJSON)

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "jwt-token") {
		t.Fatalf("response missing token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com"}`, echo.MIMEApplicationJSON)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_BadEmailFormat(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"not-an-email","password":"whatever1"}`, echo.MIMEApplicationJSON)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrongpass"}`, echo.MIMEApplicationJSON)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected domain error to propagate to the error handler, got %v", err)
	}
}

func TestAuthHandler_CurrentUser_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodGet, "/api/auth/user", "", "")

	err := h.CurrentUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAuthHandler_CurrentUser_Success(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "user-1", Email: "alice@example.com"}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/auth/user", "", "")
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleClient)

	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Fatalf("response missing user: %s", rec.Body.String())
	}
}

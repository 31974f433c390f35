package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	activateFn func(ctx context.Context, token string) error
	requestFn  func(ctx context.Context, email string) error
	confirmFn  func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Activate(ctx context.Context, token string) error {
	return s.activateFn(ctx, token)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.confirmFn(ctx, token, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return &domain.User{ID: "u1", Username: username, Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"Secret123!"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] == "" {
		t.Fatalf("expected informational message")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/register", `{"username":"bob","email":"bob@example.com","password":"Secret123!"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	// Password below minimum length never reaches the service.
	c, rec := postJSON(e, "/auth/register", `{"username":"bob","email":"bob@example.com","password":"short"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.TokenPair, error) {
			return &ports.TokenPair{
				AccessToken:  "header.payload.sig",
				RefreshToken: "opaque",
				TokenType:    "Bearer",
				ExpiresIn:    15 * time.Minute,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"Secret123!"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "header.payload.sig" || resp["refresh_token"] != "opaque" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp["token_type"] != "Bearer" {
		t.Fatalf("unexpected token_type: %v", resp["token_type"])
	}
	if resp["expires_in"] != float64(900) {
		t.Fatalf("unexpected expires_in: %v", resp["expires_in"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"wrong"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_DisabledAccount(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.TokenPair, error) {
			return nil, domain.ErrAccountDisabled
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"Secret123!"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_UnknownToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
			return nil, domain.ErrUnknownToken
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/refresh", `{"refresh_token":"never-issued"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_ReturnsSameToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
			return &ports.TokenPair{
				AccessToken:  "new.access.token",
				RefreshToken: refreshToken,
				TokenType:    "Bearer",
				ExpiresIn:    15 * time.Minute,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/refresh", `{"refresh_token":"opaque"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["refresh_token"] != "opaque" {
		t.Fatalf("refresh token must be returned unchanged, got %v", resp["refresh_token"])
	}
}

func TestAuthHandler_Activate_AlwaysOK(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		activateFn: func(ctx context.Context, token string) error {
			return nil // unknown token is a no-op success by contract
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/auth/activate/some-token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues("some-token")

	if err := handler.Activate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_RequestPasswordReset_GenericResponse(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		requestFn: func(ctx context.Context, email string) error {
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/password-reset/request", `{"email":"ghost@example.com"}`)
	if err := handler.RequestPasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ConfirmPasswordReset_Expired(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		confirmFn: func(ctx context.Context, token, newPassword string) error {
			return domain.ErrTokenExpired
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/password-reset/confirm", `{"token":"tok","new_password":"NewSecret2!"}`)
	if err := handler.ConfirmPasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

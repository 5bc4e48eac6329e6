package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/api"
	"github.com/awesomeeats/restaurant-api/internal/api/handler"
	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: input.Email, FirstName: input.FirstName}, nil
		},
	}
	e := newTestEcho()
	e.POST("/auth/register", handler.NewAuthHandler(svc).Register)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"s3cret99","first_name":"Alice"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "u1" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_ValidationErrorsListed(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, domain.NewValidationError([]string{
				"email must be a valid email",
				"password must be at least 6 characters",
			})
		},
	}
	e := newTestEcho()
	e.POST("/auth/register", handler.NewAuthHandler(svc).Register)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"email":"bad","password":"x"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected both violations listed, got %v", body.Errors)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "s3cret99" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.LoginResult{Token: "signed-token", ExpiresAt: expiry}, nil
		},
	}
	e := newTestEcho()
	e.POST("/auth/login", handler.NewAuthHandler(svc).Login)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret99"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result ports.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Token != "signed-token" || !result.ExpiresAt.Equal(expiry) {
		t.Fatalf("unexpected login result: %+v", result)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	e := newTestEcho()
	e.POST("/auth/login", handler.NewAuthHandler(svc).Login)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	// The body must not hint at which part of the credential failed.
	if strings.Contains(rec.Body.String(), "ghost@example.com") {
		t.Fatalf("response leaks the attempted email: %s", rec.Body.String())
	}
}

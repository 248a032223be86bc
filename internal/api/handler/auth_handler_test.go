package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func newAuthRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			return &domain.User{
				ID:       "user_1",
				Username: input.Username,
				Roles:    []string{domain.RoleDefault},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthRequest(http.MethodPost, "/auth/register", `{"username":"alice","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "user_1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_Register_NeverLeaksPasswordHash(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			return &domain.User{
				ID:                 "user_1",
				Username:           input.Username,
				NormalizedUsername: "alice",
				PasswordHash:       "$2a$10$secret",
				Roles:              []string{domain.RoleDefault},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthRequest(http.MethodPost, "/auth/register", `{"username":"alice","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if body := rec.Body.String(); strings.Contains(body, "secret") || strings.Contains(body, "password_hash") {
		t.Fatalf("response leaks credential material: %s", body)
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthRequest(http.MethodPost, "/auth/register", `{"username":"alice","password":"pw"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "alice" || password != "pw" {
				t.Fatalf("unexpected credentials: %q/%q", username, password)
			}
			return &ports.LoginResult{
				Token:   "signed.jwt.token",
				User:    &domain.User{ID: "user_1", Username: "alice"},
				Message: "login successful",
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
	if resp.Message != "login successful" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.User == nil || resp.User.ID != "user_1" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	for _, want := range []error{
		domain.ErrAccountNotFound,
		domain.ErrUserNotFound,
		domain.ErrInvalidCredentials,
		domain.ErrTooManyAttempts,
	} {
		svc := &stubAuthService{
			loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
				return nil, want
			},
		}
		h := NewAuthHandler(svc)

		c, _ := newAuthRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"pw"}`)
		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v to propagate, got %v", want, err)
		}
	}
}

func TestAuthHandler_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthRequest(http.MethodPost, "/auth/register", `{"username":`)
	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	c, _ = newAuthRequest(http.MethodPost, "/auth/login", `not json`)
	err = h.Login(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

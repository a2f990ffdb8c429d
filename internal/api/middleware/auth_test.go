package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

type stubAuthService struct {
	sessionFn func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthService) Signup(context.Context, string, string) (*domain.Identity, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.Identity, error) {
	return "", nil, nil
}

func (s *stubAuthService) Session(ctx context.Context, token string) (*domain.Identity, error) {
	return s.sessionFn(ctx, token)
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		sessionFn: func(_ context.Context, token string) (*domain.Identity, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.Identity{ID: "u1", Email: "a@x.com"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		if c.Get("user_id") != "u1" || c.Get("email") != "a@x.com" {
			t.Fatalf("identity not injected: %v %v", c.Get("user_id"), c.Get("email"))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		sessionFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatal("session must not be consulted without a token")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(auth)(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(auth)(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_DeadSession(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		sessionFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, domain.ErrNotAuthenticated
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(auth)(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBearerToken_CaseInsensitiveScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc")
	c := e.NewContext(req, httptest.NewRecorder())

	token, err := BearerToken(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc" {
		t.Fatalf("expected token abc, got %q", token)
	}
}

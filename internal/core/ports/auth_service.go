package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	// Session verifies a bearer token and checks the server-side session is
	// still alive; returns domain.ErrNotAuthenticated otherwise.
	Session(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}

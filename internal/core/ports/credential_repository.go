package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// CredentialRepository persists login credentials for the auth layer.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// Create inserts a credential. Returns domain.ErrAccountExists when the
	// email is already registered.
	Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
}

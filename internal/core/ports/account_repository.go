package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// AccountRepository persists accounts (identity id → role).
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Create inserts a new account. Returns domain.ErrAccountExists when an
	// account with the same id is already present.
	Create(ctx context.Context, account *domain.Account) error
	// AdoptRole sets the role on an account whose role is still empty. The
	// guard is evaluated atomically at the store; if the account already has
	// a role the call returns the stored account untouched with ok=false.
	AdoptRole(ctx context.Context, id, role string) (account *domain.Account, ok bool, err error)
}

package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// ClientProfileRepository persists client profiles keyed by user_id.
type ClientProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.ClientProfile, error)
	// EnsureStub inserts a minimal {user_id, email} row if and only if none
	// exists, in a single atomic store operation. Existing rows are never
	// touched.
	EnsureStub(ctx context.Context, userID, email string) error
	// Save replaces the profile for userID entirely (last write wins),
	// inserting when absent.
	Save(ctx context.Context, profile *domain.ClientProfile) error
}

// ConsultantProfileRepository persists consultant profiles keyed by user_id.
type ConsultantProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.ConsultantProfile, error)
	EnsureStub(ctx context.Context, userID, email string) error
	Save(ctx context.Context, profile *domain.ConsultantProfile) error
	// ListAll returns every consultant profile ordered by user_id ascending.
	ListAll(ctx context.Context) ([]domain.ConsultantProfile, error)
}

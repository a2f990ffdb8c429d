package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// IdentityService is the role resolution workflow: given a verified identity
// and an optionally claimed role, settle the account's role, make sure the
// role-specific profile exists, and decide where the caller goes next.
type IdentityService interface {
	Resolve(ctx context.Context, identity *domain.Identity, claimedRole string) (*domain.Decision, error)
}

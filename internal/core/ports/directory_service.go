package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// DirectoryService produces the public consultant directory.
type DirectoryService interface {
	List(ctx context.Context) ([]domain.ConsultantProfile, error)
}

// DirectoryCache fronts the directory read with a short-lived cache. Lookup
// misses return ok=false; cache failures must never fail the read path.
type DirectoryCache interface {
	Lookup(ctx context.Context) ([]domain.ConsultantProfile, bool)
	Store(ctx context.Context, profiles []domain.ConsultantProfile)
	Invalidate(ctx context.Context)
}

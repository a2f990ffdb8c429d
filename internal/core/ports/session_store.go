package ports

import (
	"context"
	"time"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// SessionStore keeps server-side session records keyed by token ID so that
// logout can kill a session before its JWT expires.
type SessionStore interface {
	Put(ctx context.Context, tokenID string, identity *domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (*domain.Identity, error)
	Delete(ctx context.Context, tokenID string) error
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// SessionStore keeps login sessions in Redis so a logout kills the session
// server-side before the JWT expires.
// Key format: session:<token_id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put records the session; the record expires with the token.
func (s *SessionStore) Put(ctx context.Context, tokenID string, identity *domain.Identity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(tokenID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Get returns the identity for a live session, or ErrNotAuthenticated when
// the session has been logged out or has expired.
func (s *SessionStore) Get(ctx context.Context, tokenID string) (*domain.Identity, error) {
	payload, err := s.client.Get(ctx, s.key(tokenID)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &identity, nil
}

// Delete removes the session record; deleting an absent session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(tokenID string) string {
	return "session:" + tokenID
}

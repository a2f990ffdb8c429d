package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

const (
	directoryKey = "directory:consultants"
	directoryTTL = 30 * time.Second
)

// DirectoryCache is a short-lived Redis cache in front of the consultant
// directory scan. It is best-effort: any Redis failure is logged and treated
// as a miss so the read path always works without Redis.
type DirectoryCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewDirectoryCache(client *redis.Client, log zerolog.Logger) *DirectoryCache {
	return &DirectoryCache{client: client, log: log}
}

func (c *DirectoryCache) Lookup(ctx context.Context) ([]domain.ConsultantProfile, bool) {
	payload, err := c.client.Get(ctx, directoryKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("directory cache lookup failed")
		return nil, false
	}

	var profiles []domain.ConsultantProfile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		c.log.Warn().Err(err).Msg("directory cache payload corrupt")
		return nil, false
	}
	return profiles, true
}

func (c *DirectoryCache) Store(ctx context.Context, profiles []domain.ConsultantProfile) {
	payload, err := json.Marshal(profiles)
	if err != nil {
		c.log.Warn().Err(err).Msg("directory cache encode failed")
		return
	}
	if err := c.client.Set(ctx, directoryKey, payload, directoryTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("directory cache store failed")
	}
}

func (c *DirectoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, directoryKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("directory cache invalidate failed")
	}
}

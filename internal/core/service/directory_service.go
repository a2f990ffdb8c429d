package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/consultly/marketplace-api/internal/api/metrics"
	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
	"github.com/consultly/marketplace-api/internal/pkg/media"
)

// DirectoryService produces the consultant directory: every consultant
// profile, ordered by user_id ascending, pictures resolved to absolute URLs.
type DirectoryService struct {
	consultants ports.ConsultantProfileRepository
	cache       ports.DirectoryCache
	storageBase string
	logger      zerolog.Logger
}

func NewDirectoryService(
	consultants ports.ConsultantProfileRepository,
	cache ports.DirectoryCache,
	storageBase string,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{consultants: consultants, cache: cache, storageBase: storageBase, logger: logger}
}

// List returns the full directory. The cache only ever short-circuits the
// read; cache misses and cache failures both fall through to the store.
func (s *DirectoryService) List(ctx context.Context) ([]domain.ConsultantProfile, error) {
	if cached, ok := s.cache.Lookup(ctx); ok {
		metrics.DirectoryReadsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}

	profiles, err := s.consultants.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		profiles[i].Picture = media.ResolveImageURL(s.storageBase, profiles[i].Picture)
	}

	s.cache.Store(ctx, profiles)
	metrics.DirectoryReadsTotal.WithLabelValues("store").Inc()
	return profiles, nil
}

package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultly/marketplace-api/internal/api/metrics"
	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// ProfileService persists role-specific profile edits.
type ProfileService struct {
	clients     ports.ClientProfileRepository
	consultants ports.ConsultantProfileRepository
	cache       ports.DirectoryCache
	logger      zerolog.Logger
}

func NewProfileService(
	clients ports.ClientProfileRepository,
	consultants ports.ConsultantProfileRepository,
	cache ports.DirectoryCache,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{clients: clients, consultants: consultants, cache: cache, logger: logger}
}

// Save upserts the profile keyed by userID. A second save overwrites all
// prior field values (last write wins, no merge). Numeric fields parse
// leniently: non-numeric or negative input becomes nil instead of failing
// the save.
func (s *ProfileService) Save(ctx context.Context, userID, email, role string, fields ports.ProfileFields) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	now := time.Now().UTC()

	switch role {
	case domain.RoleConsultant:
		if strings.TrimSpace(fields.ConsultationType) == "" {
			return domain.ErrInvalidProfile
		}
		profile := &domain.ConsultantProfile{
			UserID:           userID,
			Email:            email,
			ConsultationType: strings.TrimSpace(fields.ConsultationType),
			HourlyRate:       lenientNumber(fields.HourlyRate),
			ExperienceYears:  lenientNumber(fields.ExperienceYears),
			AvailableTime:    fields.AvailableTime,
			Picture:          fields.Picture,
			UpdatedAt:        now,
		}
		if err := s.consultants.Save(ctx, profile); err != nil {
			return err
		}
		// the directory serves consultant rows; a stale cache would show the
		// old listing for up to its TTL
		s.cache.Invalidate(ctx)
		metrics.ProfileSavesTotal.WithLabelValues(domain.RoleConsultant).Inc()
		s.logger.Info().Str("user_id", userID).Str("role", role).Msg("profile saved")
		return nil

	case domain.RoleClient:
		profile := &domain.ClientProfile{
			UserID:             userID,
			Email:              email,
			ProjectTitle:       fields.ProjectTitle,
			ProjectDescription: fields.ProjectDescription,
			Budget:             lenientNumber(fields.Budget),
			UpdatedAt:          now,
		}
		if err := s.clients.Save(ctx, profile); err != nil {
			return err
		}
		metrics.ProfileSavesTotal.WithLabelValues(domain.RoleClient).Inc()
		s.logger.Info().Str("user_id", userID).Str("role", role).Msg("profile saved")
		return nil

	default:
		return domain.ErrMissingRole
	}
}

// Get returns the stored profile for form prefill.
func (s *ProfileService) Get(ctx context.Context, userID, role string) (*ports.Profile, error) {
	switch role {
	case domain.RoleConsultant:
		p, err := s.consultants.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ports.Profile{Consultant: p}, nil
	case domain.RoleClient:
		p, err := s.clients.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ports.Profile{Client: p}, nil
	default:
		return nil, domain.ErrMissingRole
	}
}

// lenientNumber parses a form value as a non-negative number; anything else
// coerces to nil rather than an error.
func lenientNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultly/marketplace-api/internal/api/metrics"
	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// IdentityService settles an authenticated identity into a role, makes sure
// the role-specific profile row exists, and decides where the caller should
// be navigated next. Every entry point (landing restore, login, profile
// editor, directory) funnels through Resolve.
type IdentityService struct {
	accounts    ports.AccountRepository
	clients     ports.ClientProfileRepository
	consultants ports.ConsultantProfileRepository
	logger      zerolog.Logger
}

func NewIdentityService(
	accounts ports.AccountRepository,
	clients ports.ClientProfileRepository,
	consultants ports.ConsultantProfileRepository,
	logger zerolog.Logger,
) *IdentityService {
	return &IdentityService{
		accounts:    accounts,
		clients:     clients,
		consultants: consultants,
		logger:      logger,
	}
}

// Resolve implements the role resolution workflow. claimedRole is empty for
// pure session restoration. Repeated calls with the same identity and a
// consistent claim are idempotent: no duplicate accounts, no duplicate
// profile rows, and a non-empty stored role is never mutated.
func (s *IdentityService) Resolve(ctx context.Context, identity *domain.Identity, claimedRole string) (*domain.Decision, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if claimedRole != "" && !domain.ValidRole(claimedRole) {
		return nil, domain.ErrMissingRole
	}

	account, err := s.accounts.FindByID(ctx, identity.ID)
	switch err {
	case nil:
	case domain.ErrAccountNotFound:
		account, err = s.firstTimeAccount(ctx, identity, claimedRole)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	role, err := s.settleRole(ctx, account, claimedRole)
	if err != nil {
		return nil, err
	}

	decision, err := s.ensureProfile(ctx, identity, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", identity.ID).
		Str("role", role).
		Str("next_route", string(decision.NextRoute)).
		Bool("has_profile", decision.HasProfile).
		Msg("identity resolved")
	metrics.IdentityResolutionsTotal.WithLabelValues(role, string(decision.NextRoute)).Inc()

	return decision, nil
}

// firstTimeAccount creates the account row on first resolution. Creation
// races with itself under concurrent first logins; losing the insert means
// someone else created the row, so fall back to reading it.
func (s *IdentityService) firstTimeAccount(ctx context.Context, identity *domain.Identity, claimedRole string) (*domain.Account, error) {
	if claimedRole == "" {
		return nil, domain.ErrMissingRole
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      claimedRole,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.accounts.Create(ctx, account)
	if err == domain.ErrAccountExists {
		return s.accounts.FindByID(ctx, identity.ID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", identity.ID).Str("role", claimedRole).Msg("account created")
	return account, nil
}

// settleRole reconciles the stored role with the claimed one. A non-empty
// stored role always wins; claiming a different one is a conflict, never a
// silent override.
func (s *IdentityService) settleRole(ctx context.Context, account *domain.Account, claimedRole string) (string, error) {
	switch {
	case account.Role != "" && claimedRole != "" && account.Role != claimedRole:
		metrics.RoleConflictsTotal.Inc()
		return "", &domain.RoleConflictError{StoredRole: account.Role}

	case account.Role == "" && claimedRole == "":
		return "", domain.ErrMissingRole

	case account.Role == "":
		// Deferred role selection: the account signed up role-less and picks
		// a role now. The store applies the guard atomically; ok=false means
		// a concurrent adoption won, in which case the freshly stored role
		// decides.
		updated, ok, err := s.accounts.AdoptRole(ctx, account.ID, claimedRole)
		if err != nil {
			return "", err
		}
		if !ok && updated.Role != claimedRole {
			return "", &domain.RoleConflictError{StoredRole: updated.Role}
		}
		return updated.Role, nil

	default:
		return account.Role, nil
	}
}

// ensureProfile makes sure the role's profile row exists (atomic
// insert-if-absent, never an overwrite) and builds the Decision from its
// completeness.
func (s *IdentityService) ensureProfile(ctx context.Context, identity *domain.Identity, role string) (*domain.Decision, error) {
	if role == domain.RoleClient {
		if err := s.clients.EnsureStub(ctx, identity.ID, identity.Email); err != nil {
			return nil, err
		}
		profile, err := s.clients.FindByUserID(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		return &domain.Decision{
			Role:       role,
			HasProfile: profile.Complete(),
			NextRoute:  domain.RouteClientDashboard,
		}, nil
	}

	if err := s.consultants.EnsureStub(ctx, identity.ID, identity.Email); err != nil {
		return nil, err
	}
	profile, err := s.consultants.FindByUserID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	decision := &domain.Decision{
		Role:       role,
		HasProfile: profile.Complete(),
		NextRoute:  domain.RouteProfileEditor,
	}
	if decision.HasProfile {
		decision.NextRoute = domain.RouteDirectory
	}
	return decision, nil
}

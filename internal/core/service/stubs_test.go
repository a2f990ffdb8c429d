package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// In-memory stand-ins for the Mongo repositories and Redis cache. They
// mirror the store contracts closely enough to exercise the services,
// including the atomic guards on AdoptRole and EnsureStub.

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	creates  int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.ID]; exists {
		return domain.ErrAccountExists
	}
	clone := *account
	r.accounts[account.ID] = &clone
	r.creates++
	return nil
}

func (r *stubAccountRepo) AdoptRole(_ context.Context, id, role string) (*domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, false, domain.ErrAccountNotFound
	}
	if a.Role != "" {
		clone := *a
		return &clone, false, nil
	}
	a.Role = role
	a.UpdatedAt = time.Now().UTC()
	clone := *a
	return &clone, true, nil
}

type stubClientProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.ClientProfile
	ensures  int
	saves    int
}

func newStubClientProfileRepo() *stubClientProfileRepo {
	return &stubClientProfileRepo{profiles: make(map[string]*domain.ClientProfile)}
}

func (r *stubClientProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.ClientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubClientProfileRepo) EnsureStub(_ context.Context, userID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensures++
	if _, exists := r.profiles[userID]; exists {
		return nil
	}
	r.profiles[userID] = &domain.ClientProfile{UserID: userID, Email: email, CreatedAt: time.Now().UTC()}
	return nil
}

func (r *stubClientProfileRepo) Save(_ context.Context, profile *domain.ClientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

type stubConsultantProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.ConsultantProfile
	ensures  int
	saves    int
}

func newStubConsultantProfileRepo() *stubConsultantProfileRepo {
	return &stubConsultantProfileRepo{profiles: make(map[string]*domain.ConsultantProfile)}
}

func (r *stubConsultantProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.ConsultantProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubConsultantProfileRepo) EnsureStub(_ context.Context, userID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensures++
	if _, exists := r.profiles[userID]; exists {
		return nil
	}
	r.profiles[userID] = &domain.ConsultantProfile{UserID: userID, Email: email, CreatedAt: time.Now().UTC()}
	return nil
}

func (r *stubConsultantProfileRepo) Save(_ context.Context, profile *domain.ConsultantProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *stubConsultantProfileRepo) ListAll(_ context.Context) ([]domain.ConsultantProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ConsultantProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type stubDirectoryCache struct {
	mu          sync.Mutex
	cached      []domain.ConsultantProfile
	stores      int
	invalidates int
}

func (c *stubDirectoryCache) Lookup(_ context.Context) ([]domain.ConsultantProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return nil, false
	}
	return c.cached, true
}

func (c *stubDirectoryCache) Store(_ context.Context, profiles []domain.ConsultantProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores++
	c.cached = profiles
}

func (c *stubDirectoryCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	c.cached = nil
}

type stubCredentialRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credential
	next  int
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{creds: make(map[string]*domain.Credential)}
}

func (r *stubCredentialRepo) Create(_ context.Context, cred *domain.Credential) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.creds[cred.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.next++
	clone := *cred
	clone.ID = "user-" + string(rune('0'+r.next))
	r.creds[cred.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *c
	return &clone, nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Identity
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Identity)}
}

func (s *stubSessionStore) Put(_ context.Context, tokenID string, identity *domain.Identity, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *identity
	s.sessions[tokenID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, tokenID string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.sessions[tokenID]
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	clone := *identity
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/consultly/marketplace-api/internal/api/metrics"
	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// AuthService implements signup, login, and session handling. Tokens are
// HS256 JWTs; each login also writes a server-side session record so that
// logout can revoke a token before it expires.
type AuthService struct {
	creds     ports.CredentialRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(creds ports.CredentialRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{creds: creds, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup registers a credential. It deliberately creates no account row and
// no profile; both appear on the first identity resolution, where the role
// is known.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.creds.Create(ctx, &domain.Credential{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	return &domain.Identity{ID: created.ID, Email: created.Email}, nil
}

// Login verifies the password, issues a token, and records the session.
// Unknown emails report the same error as bad passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err == domain.ErrAccountNotFound {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	identity := &domain.Identity{ID: cred.ID, Email: cred.Email}
	token, tokenID, err := s.generateToken(identity)
	if err != nil {
		return "", nil, err
	}

	if err := s.sessions.Put(ctx, tokenID, identity, s.tokenTTL); err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, identity, nil
}

// Session turns a bearer token back into a verified identity. Both the JWT
// signature/expiry and the server-side session record must check out.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	identity, err := s.sessions.Get(ctx, tokenID)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	return identity, nil
}

// Logout deletes the session record. Tokens that no longer parse are a
// no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, tokenID)
}

func (s *AuthService) generateToken(identity *domain.Identity) (string, string, error) {
	tokenID := newTokenID()
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"jti":   tokenID,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	return signed, tokenID, err
}

func (s *AuthService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNotAuthenticated
	}
	return claims, nil
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}

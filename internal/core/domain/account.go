package domain

import "time"

const (
	RoleClient     = "client"
	RoleConsultant = "consultant"
)

// ValidRole reports whether role is one of the two marketplace roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleConsultant
}

// Account is one authenticated identity and its (at most one) role.
// An empty Role means the account signed up but has not picked a side yet;
// once set, the role never changes through this service.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the verified (id, email) pair for the current session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Credential is the password record held by the auth layer. It is separate
// from Account: signup creates a Credential, the Account row appears on the
// first identity resolution.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

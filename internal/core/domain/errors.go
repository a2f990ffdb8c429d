package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrInvalidProfile = errors.New("missing required profile fields")
var ErrObjectNotFound = errors.New("object not found")
var ErrMissingRole = errors.New("no role selected")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrStoreUnavailable = errors.New("store unavailable")

// RoleConflictError is returned when a caller claims a role different from
// the one already stored on their account. The stored role is carried so the
// UI can tell the user which role to retry with.
type RoleConflictError struct {
	StoredRole string
}

func (e *RoleConflictError) Error() string {
	return fmt.Sprintf("this email is already registered as %q, log in with that role", e.StoredRole)
}

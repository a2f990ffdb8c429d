package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Absence
// means the middleware did not run or the token failed; either way the
// caller is not authenticated.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return nil, domain.ErrNotAuthenticated
	}
	email, _ := c.Get("email").(string)
	return &domain.Identity{ID: id, Email: email}, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// RBAC enforces role-based access control. The role lives on the account
// record rather than in the token, because an account can adopt its role
// after the token was issued; the check therefore reads the store.
func RBAC(accounts ports.AccountRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			account, err := accounts.FindByID(c.Request().Context(), userID)
			if err == domain.ErrAccountNotFound {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if err != nil {
				return err
			}

			if _, ok := allowed[account.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set("role", account.Role)
			return next(c)
		}
	}
}

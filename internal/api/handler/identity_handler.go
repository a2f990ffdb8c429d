package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/ports"
)

// IdentityHandler exposes the role resolution workflow. Every frontend entry
// point (landing restore, login, editor, directory) calls Resolve and
// renders from the Decision it gets back.
type IdentityHandler struct {
	identityService ports.IdentityService
}

func NewIdentityHandler(identityService ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

type resolveRequest struct {
	// Role is the claimed role; empty means pure session restoration.
	Role string `json:"role,omitempty" validate:"omitempty,oneof=client consultant"`
}

// Resolve settles the caller's role, ensures their profile stub exists, and
// returns the navigational decision.
//
// @Summary      Resolve the caller's role and next route
// @Tags         identity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resolveRequest  true  "Claimed role (optional)"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/identity/resolve [post]
func (h *IdentityHandler) Resolve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	decision, err := h.identityService.Resolve(c.Request().Context(), identity, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, decision)
}

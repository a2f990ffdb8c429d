package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// DirectoryHandler serves the public consultant directory.
type DirectoryHandler struct {
	directoryService ports.DirectoryService
}

func NewDirectoryHandler(directoryService ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// List returns every consultant profile, ordered by user_id ascending, with
// pictures resolved to absolute URLs. Any authenticated caller may read it.
//
// @Summary      List all consultants
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ConsultantProfile
// @Failure      401  {object}  errorResponse
// @Router       /v1/consultants [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	profiles, err := h.directoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []domain.ConsultantProfile{}
	}
	return c.JSON(http.StatusOK, profiles)
}

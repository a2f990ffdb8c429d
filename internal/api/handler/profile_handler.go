package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/api/metrics"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

// ProfileHandler serves reads and writes of the caller's own profile, plus
// consultant picture uploads. The RBAC middleware resolves the caller's role
// into context before these run.
type ProfileHandler struct {
	profileService ports.ProfileService
	pictures       ports.PictureStore
}

func NewProfileHandler(profileService ports.ProfileService, pictures ports.PictureStore) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, pictures: pictures}
}

type saveProfileRequest struct {
	ConsultationType   string `json:"consultation_type,omitempty"`
	HourlyRate         string `json:"hourly_rate,omitempty"`
	ExperienceYears    string `json:"experience_years,omitempty"`
	AvailableTime      string `json:"available_time,omitempty"`
	Picture            string `json:"picture,omitempty"`
	ProjectTitle       string `json:"project_title,omitempty"`
	ProjectDescription string `json:"project_description,omitempty"`
	Budget             string `json:"budget,omitempty"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Get returns the caller's stored profile for form prefill.
//
// @Summary      Read the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	role, _ := c.Get("role").(string)

	profile, err := h.profileService.Get(c.Request().Context(), identity.ID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Save upserts the caller's profile. A second save overwrites all prior
// field values.
//
// @Summary      Save the caller's profile
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  saveProfileRequest  true  "Profile fields"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Save(c echo.Context) error {
	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	role, _ := c.Get("role").(string)

	fields := ports.ProfileFields{
		ConsultationType:   req.ConsultationType,
		HourlyRate:         req.HourlyRate,
		ExperienceYears:    req.ExperienceYears,
		AvailableTime:      req.AvailableTime,
		Picture:            req.Picture,
		ProjectTitle:       req.ProjectTitle,
		ProjectDescription: req.ProjectDescription,
		Budget:             req.Budget,
	}

	if err := h.profileService.Save(c.Request().Context(), identity.ID, identity.Email, role, fields); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPicture stores a consultant's picture and returns its public URL.
// The key embeds user id and upload time so history never collides.
//
// @Summary      Upload a profile picture
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        picture  formData  file  true  "Image file"
// @Success      200  {object}  uploadResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile/picture [post]
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "picture file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable picture file")
	}
	defer src.Close()

	key := fmt.Sprintf("%s-%d-%s", identity.ID, time.Now().UTC().Unix(), fileHeader.Filename)
	if err := h.pictures.Upload(c.Request().Context(), key, src); err != nil {
		metrics.PictureUploadsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.PictureUploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, uploadResponse{URL: h.pictures.PublicURL(key)})
}

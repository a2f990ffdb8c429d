package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/ports"
)

// MediaHandler streams stored pictures on the public bucket path, mirroring
// the /storage/v1/object/public/<bucket>/<key> URL shape the frontend
// already builds.
type MediaHandler struct {
	pictures ports.PictureStore
}

func NewMediaHandler(pictures ports.PictureStore) *MediaHandler {
	return &MediaHandler{pictures: pictures}
}

// Serve handles GET /storage/v1/object/public/consultant-pictures/:key. The
// bucket is world-readable; no auth required.
//
// @Summary      Download a public picture
// @Tags         storage
// @Produce      octet-stream
// @Param        key  path  string  true  "Object key"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /storage/v1/object/public/consultant-pictures/{key} [get]
func (h *MediaHandler) Serve(c echo.Context) error {
	key := c.Param("key")

	obj, err := h.pictures.Open(c.Request().Context(), key)
	if err != nil {
		return err
	}
	defer obj.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), obj)
	return err
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type PhotoHandler struct {
	service ports.PhotoService
}

func NewPhotoHandler(service ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

type uploadPhotoResponse struct {
	Photo        *domain.Photo `json:"photo,omitempty"`
	URL          string        `json:"url"`
	URLWithoutBg string        `json:"url_without_bg"`
}

type photoListResponse struct {
	Photos []*domain.Photo `json:"photos"`
}

// Upload stores a client photo and notifies the admin. With
// previewOnly=true the hosted URLs are returned without persisting a
// record, which backs the pre-save preview in the upload dialog.
//
// @Summary      Upload a photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image        formData  file  true   "Image file"
// @Param        previewOnly  formData  bool  false  "Host without persisting"
// @Success      201  {object}  uploadPhotoResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/photos/upload [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	image, err := formImage(c, "image")
	if err != nil {
		return err
	}
	if image == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	result, err := h.service.Upload(c.Request().Context(), ports.UploadPhotoInput{
		UserID:      userID,
		Image:       *image,
		PreviewOnly: c.FormValue("previewOnly") == "true",
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadPhotoResponse{
		Photo:        result.Photo,
		URL:          result.URL,
		URLWithoutBg: result.URLWithoutBg,
	})
}

// ListForUser returns a user's photos, newest first. Clients may only
// list their own; the admin may list anyone's.
//
// @Summary      List a user's photos
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  photoListResponse
// @Failure      403     {object}  map[string]string
// @Router       /api/photos/user/{userId} [get]
func (h *PhotoHandler) ListForUser(c echo.Context) error {
	requesterID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	photos, err := h.service.ListForUser(c.Request().Context(), role, requesterID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoListResponse{Photos: photos})
}

// Delete removes one of the requester's photos.
//
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        photoId  path  string  true  "Photo id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{photoId} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	requesterID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), requesterID, c.Param("photoId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

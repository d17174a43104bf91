package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Expectations  string `form:"expectations"`
	PiecesOrdered *int   `form:"pieces_ordered" validate:"omitempty,oneof=1 3 5 8"`
}

type clientListResponse struct {
	Clients []*ports.ClientSummary `json:"clients"`
}

// ListClients returns every client with derived photo and purchase
// counters. Admin sessions only.
//
// @Summary      List clients
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientListResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) ListClients(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clients, err := h.service.ListClients(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: clients})
}

// Get returns a user profile. Only the owner may read it.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  domain.User
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	requesterID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), requesterID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile mutates the owner's profile. Changing the order size
// notifies the admin; the optional photo travels as the "profile_photo"
// multipart field.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        userId          path      string  true   "User id"
// @Param        expectations    formData  string  false  "Free-text expectations"
// @Param        pieces_ordered  formData  int     false  "Order size (1, 3, 5 or 8)"
// @Param        profile_photo   formData  file    false  "Profile photo"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/users/{userId} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	requesterID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	photo, err := formImage(c, "profile_photo")
	if err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		RequesterID:   requesterID,
		UserID:        c.Param("userId"),
		Expectations:  req.Expectations,
		PiecesOrdered: req.PiecesOrdered,
		ProfilePhoto:  photo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

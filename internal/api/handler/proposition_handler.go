package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type PropositionHandler struct {
	service ports.PropositionService
}

func NewPropositionHandler(service ports.PropositionService) *PropositionHandler {
	return &PropositionHandler{service: service}
}

type createPropositionRequest struct {
	UserID       string `form:"user_id" validate:"required"`
	ProductName  string `form:"product_name" validate:"required"`
	ProductPrice string `form:"product_price" validate:"required"`
	ProductURL   string `form:"product_url" validate:"required,url"`
}

type updatePropositionRequest struct {
	Status string `json:"status" validate:"required,oneof=REFUSEE INTERESSE ACHETE"`
}

type propositionListResponse struct {
	Propositions []*domain.Proposition `json:"propositions"`
}

// Create issues a product suggestion to one client. Admin sessions only;
// the product image travels as the "image" multipart field.
//
// @Summary      Create a proposition
// @Tags         propositions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        user_id        formData  string  true   "Target client id"
// @Param        product_name   formData  string  true   "Product name"
// @Param        product_price  formData  string  true   "Product price"
// @Param        product_url    formData  string  true   "Product page URL"
// @Param        image          formData  file    true   "Product image"
// @Success      201  {object}  domain.Proposition
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/propositions [post]
func (h *PropositionHandler) Create(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPropositionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := formImage(c, "image")
	if err != nil {
		return err
	}
	if image == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product image is required")
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreatePropositionInput{
		AdminRole:    role,
		UserID:       req.UserID,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		ProductURL:   req.ProductURL,
		Image:        *image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// ListForUser returns a client's propositions, newest first.
//
// @Summary      List a user's propositions
// @Tags         propositions
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  propositionListResponse
// @Failure      403     {object}  map[string]string
// @Router       /api/propositions/user/{userId} [get]
func (h *PropositionHandler) ListForUser(c echo.Context) error {
	requesterID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	propositions, err := h.service.ListForUser(c.Request().Context(), role, requesterID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propositionListResponse{Propositions: propositions})
}

// UpdateStatus records the client's response to a proposition and
// notifies the admin.
//
// @Summary      Respond to a proposition
// @Tags         propositions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        propositionId  path      string                    true  "Proposition id"
// @Param        body           body      updatePropositionRequest  true  "New status"
// @Success      200            {object}  domain.Proposition
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/propositions/{propositionId} [patch]
func (h *PropositionHandler) UpdateStatus(c echo.Context) error {
	requesterID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePropositionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdatePropositionStatusInput{
		RequesterID:   requesterID,
		PropositionID: c.Param("propositionId"),
		Status:        domain.PropositionStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

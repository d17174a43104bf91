package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/api/metrics"
	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// registerRequest binds the multipart registration form; the optional
// profile photo travels as the "profile_photo" file field.
type registerRequest struct {
	Email         string `form:"email" validate:"required,email"`
	Password      string `form:"password" validate:"required,min=8"`
	FullName      string `form:"full_name" validate:"required"`
	PhoneWhatsApp string `form:"phone_whatsapp" validate:"required"`
	Expectations  string `form:"expectations" validate:"required"`
	PiecesOrdered int    `form:"pieces_ordered" validate:"required,oneof=1 3 5 8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new client account.
//
// @Summary      Register a new client
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        email           formData  string  true   "Email address"
// @Param        password        formData  string  true   "Password (min 8 chars)"
// @Param        full_name       formData  string  true   "Full name"
// @Param        phone_whatsapp  formData  string  true   "WhatsApp phone number"
// @Param        expectations    formData  string  true   "Free-text expectations"
// @Param        pieces_ordered  formData  int     true   "Order size (1, 3, 5 or 8)"
// @Param        profile_photo   formData  file    false  "Profile photo"
// @Success      201  {object}  authResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
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

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		PhoneWhatsApp: req.PhoneWhatsApp,
		Expectations:  req.Expectations,
		PiecesOrdered: req.PiecesOrdered,
		ProfilePhoto:  photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// CurrentUser returns the account behind the session token. The store is
// re-read on every call so role changes take effect without re-login.
//
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

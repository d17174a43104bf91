package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type enqueueNotificationRequest struct {
	UserID  string `json:"user_id"`
	AdminID string `json:"admin_id"`
	Type    string `json:"type" validate:"required,oneof=NEW_PHOTO_UPLOADED PROPOSITION_RESPONSE PIECES_ORDER_UPDATED"`
	Message string `json:"message" validate:"required"`
	PhotoID string `json:"photo_id"`
}

type markReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

type notificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// List returns the requester's notification feed, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        userId     query  string  false  "Recipient user id (defaults to the requester)"
// @Param        adminOnly  query  bool    false  "Admin recipients only (ADMIN sessions)"
// @Success      200  {object}  notificationListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	requesterID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	userID := c.QueryParam("userId")
	if userID == "" && role == domain.RoleClient {
		userID = requesterID
	}

	notifications, err := h.service.List(c.Request().Context(), ports.ListNotificationsInput{
		RequesterRole: role,
		RequesterID:   requesterID,
		UserID:        userID,
		AdminOnly:     c.QueryParam("adminOnly") == "true",
	})
	if err != nil {
		return err
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

// Enqueue appends a notification to the feed.
//
// @Summary      Enqueue a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enqueueNotificationRequest  true  "Notification"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  map[string]string
// @Router       /api/notifications [post]
func (h *NotificationHandler) Enqueue(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req enqueueNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.service.Enqueue(c.Request().Context(), ports.EnqueueInput{
		UserID:  req.UserID,
		AdminID: req.AdminID,
		Type:    domain.NotificationType(req.Type),
		Message: req.Message,
		PhotoID: req.PhotoID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// MarkRead flips the read flag. Re-marking an already-read notification
// succeeds without change.
//
// @Summary      Mark a notification read or unread
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        notificationId  path      string           true  "Notification id"
// @Param        body            body      markReadRequest  true  "Read flag"
// @Success      200             {object}  domain.Notification
// @Failure      404             {object}  map[string]string
// @Router       /api/notifications/{notificationId} [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.service.MarkRead(c.Request().Context(), c.Param("notificationId"), *req.Read)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Stream is the former push channel. Delivery is polling-based; the
// endpoint stays reserved and answers 501 so stale clients fail loudly
// instead of hanging.
//
// @Summary      Notification stream (not implemented)
// @Tags         notifications
// @Produce      json
// @Success      501  {object}  map[string]string
// @Router       /api/notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]string{
		"error": "streaming is not supported, poll GET /api/notifications",
	})
}

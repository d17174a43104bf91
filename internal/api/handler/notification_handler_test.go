package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type stubNotificationService struct {
	notifications []*domain.Notification
	lastList      ports.ListNotificationsInput
	err           error
}

func (s *stubNotificationService) Enqueue(_ context.Context, input ports.EnqueueInput) (*domain.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Notification{ID: "notif-1", Type: input.Type, Message: input.Message}, nil
}

func (s *stubNotificationService) List(_ context.Context, input ports.ListNotificationsInput) ([]*domain.Notification, error) {
	s.lastList = input
	return s.notifications, s.err
}

func (s *stubNotificationService) MarkRead(_ context.Context, id string, read bool) (*domain.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Notification{ID: id, Read: read}, nil
}

func TestNotificationHandler_List_UnreadCount(t *testing.T) {
	svc := &stubNotificationService{notifications: []*domain.Notification{
		{ID: "n1", Read: false},
		{ID: "n2", Read: true},
		{ID: "n3", Read: false},
	}}
	h := NewNotificationHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/notifications", "", "")
	c.Set("user_id", "client-1")
	c.Set("role", domain.RoleClient)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", body.UnreadCount)
	}
	if svc.lastList.UserID != "client-1" {
		t.Fatalf("client listing must default to own feed, got %q", svc.lastList.UserID)
	}
}

func TestNotificationHandler_Enqueue_RejectsUnknownType(t *testing.T) {
	h := NewNotificationHandler(&stubNotificationService{})

	c, _ := newTestContext(http.MethodPost, "/api/notifications",
		`{"user_id":"client-1","type":"SOMETHING_ELSE","message":"msg"}`, echo.MIMEApplicationJSON)
	c.Set("user_id", "admin-1")
	c.Set("role", domain.RoleAdmin)

	err := h.Enqueue(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %v", err)
	}
}

func TestNotificationHandler_MarkRead_RequiresFlag(t *testing.T) {
	h := NewNotificationHandler(&stubNotificationService{})

	c, _ := newTestContext(http.MethodPatch, "/api/notifications/n1", `{}`, echo.MIMEApplicationJSON)
	c.Set("user_id", "client-1")
	c.Set("role", domain.RoleClient)
	c.SetParamNames("notificationId")
	c.SetParamValues("n1")

	err := h.MarkRead(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without read flag, got %v", err)
	}
}

func TestNotificationHandler_MarkRead_AcceptsFalse(t *testing.T) {
	h := NewNotificationHandler(&stubNotificationService{})

	c, rec := newTestContext(http.MethodPatch, "/api/notifications/n1", `{"read":false}`, echo.MIMEApplicationJSON)
	c.Set("user_id", "client-1")
	c.Set("role", domain.RoleClient)
	c.SetParamNames("notificationId")
	c.SetParamValues("n1")

	if err := h.MarkRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNotificationHandler_Stream_NotImplemented(t *testing.T) {
	h := NewNotificationHandler(&stubNotificationService{})

	c, rec := newTestContext(http.MethodGet, "/api/notifications/stream", "", "")

	if err := h.Stream(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

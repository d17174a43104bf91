package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// EnqueueInput carries a notification to append to the feed.
// At least one of UserID / AdminID must be set.
type EnqueueInput struct {
	UserID  string
	AdminID string
	Type    domain.NotificationType
	Message string
	// PhotoID optionally references the related photo or proposition.
	PhotoID string
}

// ListNotificationsInput carries the requester identity and filter.
type ListNotificationsInput struct {
	RequesterRole string
	RequesterID   string
	// UserID is the recipient a client asks for; must equal RequesterID
	// for CLIENT requesters.
	UserID string
	// AdminOnly restricts an admin listing to admin-addressed entries.
	AdminOnly bool
}

// NotificationService is the append-only feed: enqueue, list, mark read.
type NotificationService interface {
	Enqueue(ctx context.Context, input EnqueueInput) (*domain.Notification, error)
	List(ctx context.Context, input ListNotificationsInput) ([]*domain.Notification, error)
	// MarkRead is idempotent: re-setting an already-read notification
	// succeeds without change.
	MarkRead(ctx context.Context, id string, read bool) (*domain.Notification, error)
}

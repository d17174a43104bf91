package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// NotificationFilter carries the query parameters for listing notifications.
// The service layer derives it from the requester's role; repositories
// apply it verbatim.
type NotificationFilter struct {
	// UserID scopes the listing to one recipient when non-empty.
	UserID string
	// AdminOnly restricts to notifications with a non-null admin recipient.
	AdminOnly bool
	// Limit caps the result set; 0 means no cap.
	Limit int
}

// NotificationRepository defines persistence for the append-only feed.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// List returns notifications matching filter, newest first.
	List(ctx context.Context, filter NotificationFilter) ([]*domain.Notification, error)
	UpdateRead(ctx context.Context, id string, read bool) (*domain.Notification, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/persoshop/persoshop-api/internal/api/metrics"
	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
	"github.com/persoshop/persoshop-api/pkg/bounded"
)

// adminListCap bounds admin-wide listings.
const adminListCap = 100

// NotificationService implements the append-only notification feed.
type NotificationService struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Enqueue appends a notification. At least one recipient must be set;
// nothing is written otherwise.
func (s *NotificationService) Enqueue(ctx context.Context, input ports.EnqueueInput) (*domain.Notification, error) {
	if input.UserID == "" && input.AdminID == "" {
		return nil, fmt.Errorf("enqueue notification: no recipient: %w", domain.ErrValidation)
	}
	if input.Type == "" || input.Message == "" {
		return nil, fmt.Errorf("enqueue notification: missing type or message: %w", domain.ErrValidation)
	}

	n := &domain.Notification{
		UserID:    input.UserID,
		AdminID:   input.AdminID,
		Type:      input.Type,
		Message:   input.Message,
		PhotoID:   input.PhotoID,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("enqueue notification: %w", err)
	}

	metrics.NotificationsEnqueuedTotal.WithLabelValues(string(input.Type)).Inc()
	s.logger.Debug().Str("type", string(input.Type)).Str("notification_id", created.ID).Msg("notification enqueued")
	return created, nil
}

// List returns notifications for the requester, newest first. Admins see
// everything (capped at adminListCap, optionally restricted to
// admin-addressed entries); clients see only their own feed.
func (s *NotificationService) List(ctx context.Context, input ports.ListNotificationsInput) ([]*domain.Notification, error) {
	var filter ports.NotificationFilter

	switch input.RequesterRole {
	case domain.RoleAdmin:
		filter = ports.NotificationFilter{AdminOnly: input.AdminOnly, Limit: adminListCap}
	case domain.RoleClient:
		if input.UserID != "" && input.UserID != input.RequesterID {
			return nil, fmt.Errorf("list notifications: %w", domain.ErrForbidden)
		}
		filter = ports.NotificationFilter{UserID: input.RequesterID}
	default:
		return nil, fmt.Errorf("list notifications: %w", domain.ErrForbidden)
	}

	items, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) ([]*domain.Notification, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		if errors.Is(err, bounded.ErrTimeout) {
			return nil, fmt.Errorf("list notifications: %w", domain.ErrTransient)
		}
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead toggles the read flag. Re-applying the current value is a
// no-op success, so clients can mark blindly.
func (s *NotificationService) MarkRead(ctx context.Context, id string, read bool) (*domain.Notification, error) {
	if id == "" {
		return nil, fmt.Errorf("mark read: missing id: %w", domain.ErrValidation)
	}

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	if n.Read == read {
		return n, nil
	}

	updated, err := s.repo.UpdateRead(ctx, id, read)
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return updated, nil
}

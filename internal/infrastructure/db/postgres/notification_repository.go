package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

// NotificationRepository implements ports.NotificationRepository on the
// relational store. The table is append-only apart from the read flag.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	m := &notificationModel{
		ID:        n.ID,
		UserID:    nullable(n.UserID),
		AdminID:   nullable(n.AdminID),
		Type:      string(n.Type),
		Message:   n.Message,
		Read:      n.Read,
		PhotoID:   nullable(n.PhotoID),
		CreatedAt: n.CreatedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return m.toDomain(), nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	var m notificationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return m.toDomain(), nil
}

func (r *NotificationRepository) List(ctx context.Context, filter ports.NotificationFilter) ([]*domain.Notification, error) {
	q := r.db.WithContext(ctx).Model(&notificationModel{}).Order("created_at DESC")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.AdminOnly {
		q = q.Where("admin_id IS NOT NULL")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var models []notificationModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]*domain.Notification, 0, len(models))
	for i := range models {
		items = append(items, models[i].toDomain())
	}
	return items, nil
}

func (r *NotificationRepository) UpdateRead(ctx context.Context, id string, read bool) (*domain.Notification, error) {
	res := r.db.WithContext(ctx).Model(&notificationModel{}).Where("id = ?", id).Update("read", read)
	if res.Error != nil {
		return nil, fmt.Errorf("update notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

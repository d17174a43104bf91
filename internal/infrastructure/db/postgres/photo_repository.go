package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// PhotoRepository implements ports.PhotoRepository on the relational store.
type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	m := &photoModel{
		ID:           photo.ID,
		UserID:       photo.UserID,
		StorageID:    photo.StorageID,
		URL:          photo.URL,
		URLWithoutBg: photo.URLWithoutBg,
		CreatedAt:    photo.CreatedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*domain.Photo, error) {
	var m photoModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PhotoRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Photo, error) {
	var models []photoModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	photos := make([]*domain.Photo, 0, len(models))
	for i := range models {
		photos = append(photos, models[i].toDomain())
	}
	return photos, nil
}

func (r *PhotoRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&photoModel{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&photoModel{})
	if res.Error != nil {
		return fmt.Errorf("delete photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// PhotoRepository defines persistence operations for client photos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
	FindByID(ctx context.Context, id string) (*domain.Photo, error)
	// ListByUser returns the user's photos, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Photo, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

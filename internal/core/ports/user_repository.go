package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail performs a case-sensitive exact match on email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindAdmin resolves the singleton admin: the first user with role ADMIN.
	FindAdmin(ctx context.Context) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListClients returns all CLIENT users, newest first.
	ListClients(ctx context.Context) ([]*domain.User, error)
}

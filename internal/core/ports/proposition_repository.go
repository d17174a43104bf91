package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// PropositionRepository defines persistence operations for propositions.
type PropositionRepository interface {
	Create(ctx context.Context, p *domain.Proposition) (*domain.Proposition, error)
	FindByID(ctx context.Context, id string) (*domain.Proposition, error)
	// ListByUser returns the client's propositions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Proposition, error)
	UpdateStatus(ctx context.Context, id string, status domain.PropositionStatus) (*domain.Proposition, error)
	// CountByUserAndStatus is the canonical "purchased pieces" computation
	// when called with ACHETE.
	CountByUserAndStatus(ctx context.Context, userID string, status domain.PropositionStatus) (int64, error)
}

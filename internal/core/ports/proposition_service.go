package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// CreatePropositionInput carries an admin-issued product suggestion.
type CreatePropositionInput struct {
	AdminRole    string
	UserID       string
	ProductName  string
	ProductPrice string
	ProductURL   string
	Image        ImageBlob
}

// UpdatePropositionStatusInput carries a client's response to a proposition.
type UpdatePropositionStatusInput struct {
	RequesterID   string
	PropositionID string
	Status        domain.PropositionStatus
}

// PropositionService handles the proposition lifecycle.
type PropositionService interface {
	Create(ctx context.Context, input CreatePropositionInput) (*domain.Proposition, error)
	ListForUser(ctx context.Context, requesterRole, requesterID, userID string) ([]*domain.Proposition, error)
	UpdateStatus(ctx context.Context, input UpdatePropositionStatusInput) (*domain.Proposition, error)
}

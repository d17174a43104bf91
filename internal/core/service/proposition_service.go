package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/persoshop/persoshop-api/internal/api/metrics"
	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
	"github.com/persoshop/persoshop-api/pkg/bounded"
)

const propositionsFolder = "persoshop/propositions"

// PropositionService handles admin-issued product suggestions and client
// responses to them.
type PropositionService struct {
	propositions  ports.PropositionRepository
	users         ports.UserRepository
	images        ports.ImageStore
	notifications ports.NotificationService
	logger        zerolog.Logger
}

func NewPropositionService(
	propositions ports.PropositionRepository,
	users ports.UserRepository,
	images ports.ImageStore,
	notifications ports.NotificationService,
	logger zerolog.Logger,
) *PropositionService {
	return &PropositionService{propositions: propositions, users: users, images: images, notifications: notifications, logger: logger}
}

// Create issues a proposition to a client. Admin only; the product image
// is hosted first, then the record is written and the client notified.
func (s *PropositionService) Create(ctx context.Context, input ports.CreatePropositionInput) (*domain.Proposition, error) {
	if input.AdminRole != domain.RoleAdmin {
		return nil, fmt.Errorf("create proposition: %w", domain.ErrForbidden)
	}
	if input.UserID == "" || input.ProductName == "" || input.ProductPrice == "" ||
		input.ProductURL == "" || len(input.Image.Data) == 0 {
		return nil, fmt.Errorf("create proposition: missing required fields: %w", domain.ErrValidation)
	}

	admin, err := s.users.FindAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create proposition: resolve admin: %w", err)
	}

	folder := fmt.Sprintf("%s/%s", propositionsFolder, input.UserID)
	upload, err := s.images.Upload(ctx, input.Image, folder)
	if err != nil {
		return nil, fmt.Errorf("create proposition: %w", err)
	}

	created, err := s.propositions.Create(ctx, &domain.Proposition{
		UserID:       input.UserID,
		AdminID:      admin.ID,
		StorageID:    upload.StorageID,
		URL:          upload.URL,
		ProductName:  input.ProductName,
		ProductPrice: input.ProductPrice,
		ProductURL:   input.ProductURL,
		Status:       domain.PropositionPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create proposition: %w", err)
	}

	metrics.PropositionsCreatedTotal.Inc()

	_, err = s.notifications.Enqueue(ctx, ports.EnqueueInput{
		UserID:  input.UserID,
		AdminID: admin.ID,
		Type:    domain.NotifPropositionResponse,
		Message: domain.NewPropositionMessage(input.ProductName),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("proposition_id", created.ID).Msg("failed to enqueue proposition notification")
	}

	s.logger.Info().Str("proposition_id", created.ID).Str("user_id", input.UserID).Msg("proposition created")
	return created, nil
}

// ListForUser returns a client's propositions. Only the owner or an
// admin may read them.
func (s *PropositionService) ListForUser(ctx context.Context, requesterRole, requesterID, userID string) ([]*domain.Proposition, error) {
	if requesterRole != domain.RoleAdmin && requesterID != userID {
		return nil, fmt.Errorf("list propositions: %w", domain.ErrForbidden)
	}

	items, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) ([]*domain.Proposition, error) {
		return s.propositions.ListByUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, bounded.ErrTimeout) {
			return nil, fmt.Errorf("list propositions: %w", domain.ErrTransient)
		}
		return nil, fmt.Errorf("list propositions: %w", err)
	}
	return items, nil
}

// UpdateStatus records a client's response to their own proposition and
// notifies the admin with a message naming the product.
func (s *PropositionService) UpdateStatus(ctx context.Context, input ports.UpdatePropositionStatusInput) (*domain.Proposition, error) {
	if !input.Status.IsClientResponse() {
		return nil, fmt.Errorf("update proposition: invalid status %q: %w", input.Status, domain.ErrValidation)
	}

	p, err := s.propositions.FindByID(ctx, input.PropositionID)
	if err != nil {
		return nil, fmt.Errorf("update proposition: %w", err)
	}
	if p.UserID != input.RequesterID {
		return nil, fmt.Errorf("update proposition: %w", domain.ErrForbidden)
	}

	updated, err := s.propositions.UpdateStatus(ctx, input.PropositionID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("update proposition: %w", err)
	}

	metrics.PropositionStatusTotal.WithLabelValues(string(input.Status)).Inc()

	if admin, err := s.users.FindAdmin(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("admin not found, response notification skipped")
	} else {
		_, err := s.notifications.Enqueue(ctx, ports.EnqueueInput{
			UserID:  input.RequesterID,
			AdminID: admin.ID,
			Type:    domain.NotifPropositionResponse,
			Message: domain.PropositionResponseMessage(input.Status, updated.ProductName),
			PhotoID: updated.ID,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("proposition_id", updated.ID).Msg("failed to enqueue response notification")
		}
	}

	return updated, nil
}

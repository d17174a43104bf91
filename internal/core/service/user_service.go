package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
	"github.com/persoshop/persoshop-api/pkg/bounded"
)

// UserService handles profile reads/updates and the admin client list.
type UserService struct {
	users         ports.UserRepository
	photos        ports.PhotoRepository
	propositions  ports.PropositionRepository
	images        ports.ImageStore
	notifications ports.NotificationService
	logger        zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	photos ports.PhotoRepository,
	propositions ports.PropositionRepository,
	images ports.ImageStore,
	notifications ports.NotificationService,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, photos: photos, propositions: propositions, images: images, notifications: notifications, logger: logger}
}

// ListClients returns all clients with their photo count and purchase
// progress. Progress is the count of ACHETE propositions over the ordered
// size; that count is the single canonical computation.
func (s *UserService) ListClients(ctx context.Context, requesterRole string) ([]*ports.ClientSummary, error) {
	if requesterRole != domain.RoleAdmin {
		return nil, fmt.Errorf("list clients: %w", domain.ErrForbidden)
	}

	clients, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) ([]*domain.User, error) {
		return s.users.ListClients(ctx)
	})
	if err != nil {
		if errors.Is(err, bounded.ErrTimeout) {
			return nil, fmt.Errorf("list clients: %w", domain.ErrTransient)
		}
		return nil, fmt.Errorf("list clients: %w", err)
	}

	summaries := make([]*ports.ClientSummary, 0, len(clients))
	for _, c := range clients {
		photoCount, err := s.photos.CountByUser(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list clients: count photos: %w", err)
		}
		purchased, err := s.propositions.CountByUserAndStatus(ctx, c.ID, domain.PropositionPurchased)
		if err != nil {
			return nil, fmt.Errorf("list clients: count purchases: %w", err)
		}

		summaries = append(summaries, &ports.ClientSummary{
			ID:              c.ID,
			Email:           c.Email,
			FullName:        c.FullName,
			PhoneWhatsApp:   c.PhoneWhatsApp,
			ProfilePhoto:    c.ProfilePhoto,
			PiecesOrdered:   c.PiecesOrdered,
			PhotosCount:     photoCount,
			PiecesPurchased: purchased,
			PiecesProgress:  fmt.Sprintf("%d/%d", purchased, c.PiecesOrdered),
		})
	}
	return summaries, nil
}

// Get returns a profile. Only the owner may read it.
func (s *UserService) Get(ctx context.Context, requesterID, userID string) (*domain.User, error) {
	if requesterID != userID {
		return nil, fmt.Errorf("get user: %w", domain.ErrForbidden)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile mutates the owner's expectations, order size, or profile
// photo. An order-size change enqueues a PIECES_ORDER_UPDATED
// notification for the admin.
func (s *UserService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	if input.RequesterID != input.UserID {
		return nil, fmt.Errorf("update profile: %w", domain.ErrForbidden)
	}
	if input.PiecesOrdered != nil && !domain.IsValidPiecesOrdered(*input.PiecesOrdered) {
		return nil, fmt.Errorf("update profile: invalid pieces ordered %d: %w", *input.PiecesOrdered, domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	previousPieces := user.PiecesOrdered

	if input.Expectations != "" {
		user.Expectations = input.Expectations
	}
	if input.PiecesOrdered != nil {
		user.PiecesOrdered = *input.PiecesOrdered
	}
	if input.ProfilePhoto != nil {
		upload, err := s.images.Upload(ctx, *input.ProfilePhoto, profilesFolder)
		if err != nil {
			return nil, fmt.Errorf("update profile: upload photo: %w", err)
		}
		user.ProfilePhoto = upload.URL
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if input.PiecesOrdered != nil && *input.PiecesOrdered != previousPieces {
		if admin, err := s.users.FindAdmin(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("admin not found, order notification skipped")
		} else {
			_, err := s.notifications.Enqueue(ctx, ports.EnqueueInput{
				UserID:  input.UserID,
				AdminID: admin.ID,
				Type:    domain.NotifPiecesOrderUpdated,
				Message: domain.PiecesOrderUpdatedMessage(updated.FullName, updated.PiecesOrdered),
			})
			if err != nil {
				s.logger.Warn().Err(err).Str("user_id", updated.ID).Msg("failed to enqueue order notification")
			}
		}
	}

	return updated, nil
}

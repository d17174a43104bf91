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

const photosFolder = "persoshop/photos"

// PhotoService handles client photo uploads against the image store and
// notifies the admin singleton on each persisted upload.
type PhotoService struct {
	photos        ports.PhotoRepository
	users         ports.UserRepository
	images        ports.ImageStore
	notifications ports.NotificationService
	logger        zerolog.Logger
}

func NewPhotoService(
	photos ports.PhotoRepository,
	users ports.UserRepository,
	images ports.ImageStore,
	notifications ports.NotificationService,
	logger zerolog.Logger,
) *PhotoService {
	return &PhotoService{photos: photos, users: users, images: images, notifications: notifications, logger: logger}
}

// Upload stores the image, attempts background removal (falling back to
// the original URL), persists the photo unless PreviewOnly, and enqueues
// a NEW_PHOTO_UPLOADED notification for the admin.
func (s *PhotoService) Upload(ctx context.Context, input ports.UploadPhotoInput) (*ports.UploadPhotoResult, error) {
	if len(input.Image.Data) == 0 {
		return nil, fmt.Errorf("upload photo: no image provided: %w", domain.ErrValidation)
	}

	folder := fmt.Sprintf("%s/%s", photosFolder, input.UserID)
	upload, err := s.images.Upload(ctx, input.Image, folder)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	urlWithoutBg, err := s.images.RemoveBackground(ctx, upload.StorageID)
	if err != nil {
		s.logger.Warn().Err(err).Str("storage_id", upload.StorageID).Msg("background removal failed, using original")
		urlWithoutBg = upload.URL
	}

	if input.PreviewOnly {
		return &ports.UploadPhotoResult{URL: upload.URL, URLWithoutBg: urlWithoutBg}, nil
	}

	photo, err := s.photos.Create(ctx, &domain.Photo{
		UserID:       input.UserID,
		StorageID:    upload.StorageID,
		URL:          upload.URL,
		URLWithoutBg: urlWithoutBg,
	})
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	metrics.PhotosUploadedTotal.Inc()

	uploaderName := input.UserName
	if uploaderName == "" {
		if owner, err := s.users.FindByID(ctx, input.UserID); err == nil {
			uploaderName = owner.FullName
		}
	}

	if admin, err := s.users.FindAdmin(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("admin not found, upload notification skipped")
	} else {
		_, err := s.notifications.Enqueue(ctx, ports.EnqueueInput{
			UserID:  input.UserID,
			AdminID: admin.ID,
			Type:    domain.NotifNewPhoto,
			Message: domain.PhotoUploadedMessage(uploaderName),
			PhotoID: photo.ID,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("photo_id", photo.ID).Msg("failed to enqueue upload notification")
		}
	}

	s.logger.Info().Str("photo_id", photo.ID).Str("user_id", input.UserID).Msg("photo uploaded")
	return &ports.UploadPhotoResult{Photo: photo, URL: photo.URL, URLWithoutBg: photo.URLWithoutBg}, nil
}

// ListForUser returns the user's photos. Only the owner or an admin may
// read them.
func (s *PhotoService) ListForUser(ctx context.Context, requesterRole, requesterID, userID string) ([]*domain.Photo, error) {
	if requesterRole != domain.RoleAdmin && requesterID != userID {
		return nil, fmt.Errorf("list photos: %w", domain.ErrForbidden)
	}

	photos, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) ([]*domain.Photo, error) {
		return s.photos.ListByUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, bounded.ErrTimeout) {
			return nil, fmt.Errorf("list photos: %w", domain.ErrTransient)
		}
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// Delete removes a photo owned by the requester. The image-store delete
// is best effort; the record is removed regardless.
func (s *PhotoService) Delete(ctx context.Context, requesterID, photoID string) error {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if photo.UserID != requesterID {
		return fmt.Errorf("delete photo: %w", domain.ErrForbidden)
	}

	if err := s.images.Delete(ctx, photo.StorageID); err != nil {
		s.logger.Warn().Err(err).Str("storage_id", photo.StorageID).Msg("image store delete failed")
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

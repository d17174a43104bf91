package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// ImageBlob is a raw image payload handed to the image store.
type ImageBlob struct {
	Data        []byte
	ContentType string
}

// UploadPhotoInput carries a client photo upload.
type UploadPhotoInput struct {
	UserID   string
	UserName string
	Image    ImageBlob
	// PreviewOnly returns the hosted URLs without persisting a record.
	PreviewOnly bool
}

// UploadPhotoResult is returned for preview uploads.
type UploadPhotoResult struct {
	Photo        *domain.Photo // nil when PreviewOnly
	URL          string
	URLWithoutBg string
}

// PhotoService handles photo uploads and retrieval.
type PhotoService interface {
	Upload(ctx context.Context, input UploadPhotoInput) (*UploadPhotoResult, error)
	// ListForUser enforces ownership: only the owner or an admin may list.
	ListForUser(ctx context.Context, requesterRole, requesterID, userID string) ([]*domain.Photo, error)
	// Delete removes the photo; only the owner may delete.
	Delete(ctx context.Context, requesterID, photoID string) error
}

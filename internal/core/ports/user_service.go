package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// ClientSummary is the admin-facing view of a client with derived counters.
type ClientSummary struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	PhoneWhatsApp   string `json:"phone_whatsapp,omitempty"`
	ProfilePhoto    string `json:"profile_photo,omitempty"`
	PiecesOrdered   int    `json:"pieces_ordered"`
	PhotosCount     int64  `json:"photos_count"`
	PiecesPurchased int64  `json:"pieces_purchased"`
	// PiecesProgress is "<purchased>/<ordered>".
	PiecesProgress string `json:"pieces_progress"`
}

// UpdateProfileInput carries a client's profile mutation. Nil / empty
// fields are left untouched.
type UpdateProfileInput struct {
	RequesterID   string
	UserID        string
	Expectations  string
	PiecesOrdered *int
	ProfilePhoto  *ImageBlob
}

// UserService handles profile reads and updates plus the admin client list.
type UserService interface {
	ListClients(ctx context.Context, requesterRole string) ([]*ClientSummary, error)
	// Get returns the profile; only the owner may read it.
	Get(ctx context.Context, requesterID, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// RegisterInput carries everything needed to create a client account.
type RegisterInput struct {
	Email         string
	Password      string
	FullName      string
	PhoneWhatsApp string
	Expectations  string
	PiecesOrdered int
	// ProfilePhoto is an optional image blob uploaded at registration.
	ProfilePhoto *ImageBlob
}

// AuthService issues sessions and manages accounts.
type AuthService interface {
	// Login verifies the credential pair and mints a session token.
	// Unknown email and wrong password are indistinguishable to callers.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// CurrentUser re-reads the store for the session's user id.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	// RefreshToken re-signs a token for the user with extended expiry.
	RefreshToken(userID, role string) (string, error)
}

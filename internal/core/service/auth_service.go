package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
	"github.com/persoshop/persoshop-api/pkg/bounded"
)

const (
	defaultTokenTTL   = 30 * 24 * time.Hour
	minPasswordLength = 8
	profilesFolder    = "persoshop/profiles"
)

// AuthService implements registration, login, and session token minting.
// Tokens are stateless HS256 JWTs, so a token returned by Login verifies
// immediately on the next request from the same client.
type AuthService struct {
	repo      ports.UserRepository
	images    ports.ImageStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, images ports.ImageStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, images: images, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login verifies the credential pair and mints a 30-day session token.
// Unknown email and wrong password both return ErrInvalidCredentials so
// callers cannot enumerate accounts; store failures return ErrTransient.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) (*domain.User, error) {
		return s.repo.FindByEmail(ctx, email)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("user lookup failed during login")
		return "", nil, fmt.Errorf("login: %w", domain.ErrTransient)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register creates a CLIENT account. The minimum password length is
// enforced here only; Login accepts whatever is stored.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.FullName == "" ||
		input.PhoneWhatsApp == "" || input.Expectations == "" {
		return nil, fmt.Errorf("register: missing required fields: %w", domain.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("register: password shorter than %d characters: %w", minPasswordLength, domain.ErrValidation)
	}
	if !domain.IsValidPiecesOrdered(input.PiecesOrdered) {
		return nil, fmt.Errorf("register: invalid pieces ordered %d: %w", input.PiecesOrdered, domain.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	var profileURL string
	if input.ProfilePhoto != nil {
		upload, err := s.images.Upload(ctx, *input.ProfilePhoto, profilesFolder)
		if err != nil {
			return nil, fmt.Errorf("register: upload profile photo: %w", err)
		}
		profileURL = upload.URL
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:         input.Email,
		PasswordHash:  string(hash),
		Role:          domain.RoleClient,
		FullName:      input.FullName,
		PhoneWhatsApp: input.PhoneWhatsApp,
		Expectations:  input.Expectations,
		PiecesOrdered: input.PiecesOrdered,
		ProfilePhoto:  profileURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("client registered")
	return created, nil
}

// CurrentUser re-reads the store for the session's user id.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := bounded.Run(ctx, bounded.QueryBudget, func(ctx context.Context) (*domain.User, error) {
		return s.repo.FindByID(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, bounded.ErrTimeout) {
			return nil, fmt.Errorf("current user: %w", domain.ErrTransient)
		}
		return nil, err
	}
	return user, nil
}

// RefreshToken re-signs a token with extended expiry, keeping the role
// claim from the presented session. Called by the auth middleware on each
// validated request.
func (s *AuthService) RefreshToken(userID, role string) (string, error) {
	return s.mintToken(userID, role)
}

func (s *AuthService) mintToken(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

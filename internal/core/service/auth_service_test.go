package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, newStubImageStore(), "secret", time.Hour, zerolog.Nop())
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:         "alice@example.com",
		Password:      "longenough",
		FullName:      "Alice Martin",
		PhoneWhatsApp: "+33600000000",
		Expectations:  "Style casual chic",
		PiecesOrdered: 3,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected role CLIENT, got %s", user.Role)
	}
	if user.PasswordHash == "longenough" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	input := validRegisterInput()
	input.Password = "short"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_InvalidPiecesOrdered(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	input := validRegisterInput()
	input.PiecesOrdered = 4
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), validRegisterInput()); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_ProfilePhoto(t *testing.T) {
	repo := newStubUserRepo()
	images := newStubImageStore()
	svc := NewAuthService(repo, images, "secret", time.Hour, zerolog.Nop())

	input := validRegisterInput()
	input.ProfilePhoto = &ports.ImageBlob{Data: []byte("jpeg"), ContentType: "image/jpeg"}

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ProfilePhoto == "" {
		t.Fatalf("expected profile photo URL to be set")
	}
	if len(images.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(images.uploads))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "longenough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleClient {
		t.Fatalf("expected role CLIENT, got %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestAuthService_Login_CredentialCollapse(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever1")
	_, _, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrongpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_StoreFailureIsTransient(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newAuthService(repo)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "longenough")
	if !errors.Is(err, domain.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	token, err := svc.RefreshToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if claims["sub"] != "user-1" || claims["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_CurrentUser_ReflectsStore(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// A role change in the store is visible on the next read, without
	// waiting for a new login.
	stored := repo.users[created.ID]
	stored.Role = domain.RoleAdmin

	current, err := svc.CurrentUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if current.Role != domain.RoleAdmin {
		t.Fatalf("expected refreshed role ADMIN, got %s", current.Role)
	}
}

package postgres

import (
	"time"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// GORM models used for persistence. Kept separate from domain types so
// the schema is not coupled to the JSON contract.

type userModel struct {
	ID            string `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	Role          string `gorm:"not null;index"`
	FullName      string `gorm:"not null"`
	PhoneWhatsApp string
	Expectations  string `gorm:"type:text"`
	PiecesOrdered int    `gorm:"not null;default:1"`
	ProfilePhoto  string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}

func (userModel) TableName() string { return "users" }

type photoModel struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"not null;index"`
	StorageID    string `gorm:"not null"`
	URL          string `gorm:"not null"`
	URLWithoutBg string
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (photoModel) TableName() string { return "photos" }

type propositionModel struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"not null;index"`
	AdminID      string `gorm:"not null"`
	StorageID    string `gorm:"not null"`
	URL          string `gorm:"not null"`
	ProductName  string `gorm:"not null"`
	ProductPrice string `gorm:"not null"`
	ProductURL   string `gorm:"not null"`
	Status       string `gorm:"not null;index;default:EN_ATTENTE"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (propositionModel) TableName() string { return "propositions" }

type notificationModel struct {
	ID        string  `gorm:"primaryKey"`
	UserID    *string `gorm:"index"`
	AdminID   *string `gorm:"index"`
	Type      string  `gorm:"not null"`
	Message   string  `gorm:"not null"`
	Read      bool    `gorm:"not null;default:false"`
	PhotoID   *string
	CreatedAt time.Time `gorm:"not null;index"`
}

func (notificationModel) TableName() string { return "notifications" }

// ── model ↔ domain mapping ────────────────────────────────────────────────────

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          m.Role,
		FullName:      m.FullName,
		PhoneWhatsApp: m.PhoneWhatsApp,
		Expectations:  m.Expectations,
		PiecesOrdered: m.PiecesOrdered,
		ProfilePhoto:  m.ProfilePhoto,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func userToModel(u *domain.User) *userModel {
	return &userModel{
		ID:            u.ID,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Role:          u.Role,
		FullName:      u.FullName,
		PhoneWhatsApp: u.PhoneWhatsApp,
		Expectations:  u.Expectations,
		PiecesOrdered: u.PiecesOrdered,
		ProfilePhoto:  u.ProfilePhoto,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *photoModel) toDomain() *domain.Photo {
	return &domain.Photo{
		ID:           m.ID,
		UserID:       m.UserID,
		StorageID:    m.StorageID,
		URL:          m.URL,
		URLWithoutBg: m.URLWithoutBg,
		CreatedAt:    m.CreatedAt,
	}
}

func (m *propositionModel) toDomain() *domain.Proposition {
	return &domain.Proposition{
		ID:           m.ID,
		UserID:       m.UserID,
		AdminID:      m.AdminID,
		StorageID:    m.StorageID,
		URL:          m.URL,
		ProductName:  m.ProductName,
		ProductPrice: m.ProductPrice,
		ProductURL:   m.ProductURL,
		Status:       domain.PropositionStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func (m *notificationModel) toDomain() *domain.Notification {
	n := &domain.Notification{
		ID:        m.ID,
		Type:      domain.NotificationType(m.Type),
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
	if m.UserID != nil {
		n.UserID = *m.UserID
	}
	if m.AdminID != nil {
		n.AdminID = *m.AdminID
	}
	if m.PhotoID != nil {
		n.PhotoID = *m.PhotoID
	}
	return n
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

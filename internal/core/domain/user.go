package domain

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// ValidPiecesOrdered lists the order sizes a client can pick at
// registration or later in their profile.
var ValidPiecesOrdered = []int{1, 3, 5, 8}

// IsValidPiecesOrdered reports whether n is an accepted order size.
func IsValidPiecesOrdered(n int) bool {
	for _, v := range ValidPiecesOrdered {
		if v == n {
			return true
		}
	}
	return false
}

// User models an authenticated actor: the single admin operator or a client.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	FullName      string    `json:"full_name"`
	PhoneWhatsApp string    `json:"phone_whatsapp,omitempty"`
	Expectations  string    `json:"expectations,omitempty"`
	PiecesOrdered int       `json:"pieces_ordered"`
	ProfilePhoto  string    `json:"profile_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

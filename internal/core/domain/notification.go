package domain

import "time"

// NotificationType is the closed set of event tags a notification can carry.
type NotificationType string

const (
	NotifNewPhoto            NotificationType = "NEW_PHOTO_UPLOADED"
	NotifPropositionResponse NotificationType = "PROPOSITION_RESPONSE"
	NotifPiecesOrderUpdated  NotificationType = "PIECES_ORDER_UPDATED"
)

// Notification is a recorded event visible to its recipient. At least one
// of UserID / AdminID is set. Records are append-only: after creation only
// the Read flag mutates, and nothing is ever deleted.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id,omitempty"`
	AdminID   string           `json:"admin_id,omitempty"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	PhotoID   string           `json:"photo_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

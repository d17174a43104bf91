package domain

import "time"

// PropositionStatus is the lifecycle state of a product suggestion.
type PropositionStatus string

const (
	PropositionPending    PropositionStatus = "EN_ATTENTE"
	PropositionRefused    PropositionStatus = "REFUSEE"
	PropositionInterested PropositionStatus = "INTERESSE"
	PropositionPurchased  PropositionStatus = "ACHETE"
)

// IsClientResponse reports whether s is a status a client may set.
// EN_ATTENTE is the initial state only; clients respond, they never reset.
func (s PropositionStatus) IsClientResponse() bool {
	switch s {
	case PropositionRefused, PropositionInterested, PropositionPurchased:
		return true
	}
	return false
}

// Proposition is an admin-issued product suggestion shown to one client.
type Proposition struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	AdminID      string            `json:"admin_id"`
	StorageID    string            `json:"storage_id"`
	URL          string            `json:"url"`
	ProductName  string            `json:"product_name"`
	ProductPrice string            `json:"product_price"`
	ProductURL   string            `json:"product_url"`
	Status       PropositionStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

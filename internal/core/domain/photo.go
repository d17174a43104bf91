package domain

import "time"

// Photo is a client-uploaded picture hosted by the image store.
// URLWithoutBg points at the background-removed rendition and falls back
// to URL when the transform failed at upload time.
type Photo struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StorageID    string    `json:"storage_id"`
	URL          string    `json:"url"`
	URLWithoutBg string    `json:"url_without_bg"`
	CreatedAt    time.Time `json:"created_at"`
}

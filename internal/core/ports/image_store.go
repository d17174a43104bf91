package ports

import "context"

// ImageUpload is what the hosting collaborator returns for a stored blob.
type ImageUpload struct {
	// StorageID is the opaque identifier under which the blob is stored.
	StorageID string
	// URL is the public URL of the stored image.
	URL string
}

// ImageStore is the image hosting / transform collaborator. Callers must
// tolerate RemoveBackground failing and fall back to the original URL.
type ImageStore interface {
	Upload(ctx context.Context, blob ImageBlob, folder string) (*ImageUpload, error)
	// RemoveBackground returns the URL of a background-removed rendition
	// of a previously uploaded image. Synchronous URL construction, not a
	// queued job.
	RemoveBackground(ctx context.Context, storageID string) (string, error)
	Delete(ctx context.Context, storageID string) error
}

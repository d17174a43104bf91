// Package imagestore adapts S3-compatible object storage to the image
// hosting contract: store a blob under a folder, hand back a public URL
// and an opaque identifier, and construct background-removed rendition
// URLs. Renditions are URL construction only; the transform pipeline
// behind the rendition prefix is outside this process.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/persoshop/persoshop-api/internal/core/ports"
)

// nobgPrefix is the key prefix under which background-removed renditions
// are published.
const nobgPrefix = "nobg/"

// Config captures the settings for the object-storage connection.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL, when set, is used as the URL prefix for stored
	// images instead of the raw endpoint (e.g. a CDN front).
	PublicBaseURL string
}

// MinioStore implements ports.ImageStore on MinIO/S3-compatible storage.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to the object store and ensures the bucket exists.
func New(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	publicURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// Upload stores the blob under folder and returns its opaque id and
// public URL.
func (s *MinioStore) Upload(ctx context.Context, blob ports.ImageBlob, folder string) (*ports.ImageUpload, error) {
	if len(blob.Data) == 0 {
		return nil, fmt.Errorf("upload image: empty blob")
	}

	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), extensionFor(blob.ContentType))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(blob.Data), int64(len(blob.Data)), minio.PutObjectOptions{
		ContentType: blob.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	return &ports.ImageUpload{StorageID: key, URL: s.urlFor(key)}, nil
}

// RemoveBackground returns the rendition URL for a stored image. This is
// synchronous URL construction; callers fall back to the original URL
// when it fails.
func (s *MinioStore) RemoveBackground(_ context.Context, storageID string) (string, error) {
	if storageID == "" {
		return "", fmt.Errorf("remove background: missing storage id")
	}
	key := nobgPrefix + strings.TrimSuffix(storageID, extensionOf(storageID)) + ".png"
	return s.urlFor(key), nil
}

// Delete removes the stored blob and its rendition (best effort on the
// rendition).
func (s *MinioStore) Delete(ctx context.Context, storageID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	rendition := nobgPrefix + strings.TrimSuffix(storageID, extensionOf(storageID)) + ".png"
	_ = s.client.RemoveObject(ctx, s.bucket, rendition, minio.RemoveObjectOptions{})
	return nil
}

func (s *MinioStore) urlFor(key string) string {
	return s.publicURL + "/" + key
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

func extensionOf(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 && !strings.Contains(key[i:], "/") {
		return key[i:]
	}
	return ""
}

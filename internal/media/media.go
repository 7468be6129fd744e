// Package media stores uploaded images in object storage and serves them by
// public URL.
package media

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"campwild/internal/config"
	"campwild/internal/middleware"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Resource identifies a stored object: its public URL and the key needed to
// delete it later.
type Resource struct {
	URL string
	ID  string
}

// Store uploads and deletes image objects.
type Store interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (*Resource, error)
	Destroy(ctx context.Context, id string) error
}

// AllowedExtension reports whether the filename carries an accepted image
// extension.
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// MinioStore is a Store backed by a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore constructs a store from config and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	if strings.TrimSpace(cfg.MediaEndpoint) == "" {
		return nil, fmt.Errorf("media endpoint is required")
	}
	if strings.TrimSpace(cfg.MediaBucket) == "" {
		return nil, fmt.Errorf("media bucket is required")
	}

	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, err
	}

	store := &MinioStore{
		client:    client,
		bucket:    cfg.MediaBucket,
		publicURL: strings.TrimSuffix(cfg.MediaPublicURL, "/"),
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload stores data under a fresh key in the given folder. The original
// filename only contributes its extension; the key itself is a UUID so
// concurrent uploads of the same file never collide.
func (s *MinioStore) Upload(ctx context.Context, data []byte, filename, folder string) (*Resource, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	middleware.ObserveExternalCall("media", err)
	if err != nil {
		return nil, err
	}

	return &Resource{
		URL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		ID:  key,
	}, nil
}

// Destroy removes a previously uploaded object by its key.
func (s *MinioStore) Destroy(ctx context.Context, id string) error {
	err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{})
	middleware.ObserveExternalCall("media", err)
	return err
}

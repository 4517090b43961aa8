package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"songvault/config"
	"songvault/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage wraps the MinIO client for audio object operations.
type ObjectStorage struct {
	client     *minio.Client
	bucket     string
	endpoint   string
	useSSL     bool
	publicBase string
}

// New connects to MinIO and ensures the bucket exists.
func New(cfg *config.Config) (*ObjectStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("bucket created", logger.String("bucket", cfg.MinioBucket))
	}

	return &ObjectStorage{
		client:     client,
		bucket:     cfg.MinioBucket,
		endpoint:   cfg.MinioEndpoint,
		useSSL:     cfg.MinioUseSSL,
		publicBase: cfg.MinioPublicBase,
	}, nil
}

// Upload writes the object bytes under the given key.
func (s *ObjectStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

// PublicURL resolves a fetchable URL for a stored object. It prefers a
// configured public base, then a presigned URL; when neither resolves it
// falls back to the deterministic scheme://endpoint/bucket/key form.
func (s *ObjectStorage) PublicURL(ctx context.Context, key string) string {
	if s.publicBase != "" {
		return strings.TrimRight(s.publicBase, "/") + "/" + s.bucket + "/" + key
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, 7*24*time.Hour, url.Values{})
	if err == nil && presigned != nil {
		return presigned.String()
	}
	logger.Warn("presigning failed, constructing object URL", logger.String("key", key), logger.ErrorField(err))

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}

// Remove deletes a stored object. Used to compensate a failed metadata
// create after a successful upload.
func (s *ObjectStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

// Fetch opens a stored object for reading.
func (s *ObjectStorage) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return object, nil
}

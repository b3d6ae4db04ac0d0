package storage

import (
	"context"
	"fmt"
	"io"
	"momnt-server/internal/config"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioGateway stores objects in any S3-compatible bucket.
type MinioGateway struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioGateway(ctx context.Context, cfg config.MinioStorageConfig) (*MinioGateway, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	g := &MinioGateway{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}
	if err := g.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return g, nil
}

func publicBase(cfg config.MinioStorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func (g *MinioGateway) ensureBucket(ctx context.Context, region string) error {
	exists, err := g.client.BucketExists(ctx, g.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := g.client.MakeBucket(ctx, g.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (g *MinioGateway) URL(key string) string {
	return g.publicURL + "/" + key
}

func (g *MinioGateway) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	}
	if _, err := g.client.PutObject(ctx, g.bucket, key, r, size, opts); err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return g.URL(key), nil
}

func (g *MinioGateway) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

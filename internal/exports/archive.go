package exports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"devis_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver stores a copy of an exported CSV in object storage.
type Archiver interface {
	ArchiveCSV(ctx context.Context, businessID uuid.UUID, content []byte) (string, error)
}

// MinioArchiver archives export files to a MinIO bucket.
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinioArchiver creates the archiver from storage configuration. It
// returns an error when MinIO is not configured.
func NewMinioArchiver(cfg config.StorageConfig) (*MinioArchiver, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	return &MinioArchiver{client: client, bucket: cfg.GetMinioBucketExportArchives()}, nil
}

// ArchiveCSV uploads the CSV under a key unique to the business and moment.
func (a *MinioArchiver) ArchiveCSV(ctx context.Context, businessID uuid.UUID, content []byte) (string, error) {
	key := fmt.Sprintf("%s/quotes_%s.csv", businessID, time.Now().UTC().Format("20060102T150405"))
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("upload export archive %s: %w", key, err)
	}
	return key, nil
}

var _ Archiver = (*MinioArchiver)(nil)

// Package backup serializes the full folder/note dataset to a portable JSON
// snapshot and back, and can push a snapshot to an S3 bucket.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/models"
)

// SchemaVersion guards imports against snapshots from incompatible builds.
const SchemaVersion = 1

type Snapshot struct {
	Version    int             `json:"version"`
	ExportedAt int64           `json:"exportedAt"`
	Folders    []models.Folder `json:"folders"`
	Notes      []models.Note   `json:"notes"`
}

// Export captures the current collections as an indented JSON snapshot.
func Export(col *collection.Collection) ([]byte, error) {
	snap := Snapshot{
		Version:    SchemaVersion,
		ExportedAt: models.Timestamp(),
		Folders:    col.Folders(),
		Notes:      col.Notes(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the collections (and the durable copy) with the snapshot.
func Import(ctx context.Context, col *collection.Collection, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Version != SchemaVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	return col.Replace(ctx, snap.Folders, snap.Notes)
}

// Push uploads a snapshot to s3://bucket/key using the ambient AWS
// credential chain.
func Push(ctx context.Context, region, bucket, key string, data []byte) error {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	uploader := manager.NewUploader(s3.NewFromConfig(cfg))
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot to s3: %w", err)
	}
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/contextly-dev/contextly/internal/config"
)

const modelFileName = "model.bin"

type s3ModelStore struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3ModelStore returns a ModelStore backed by the model artifact bucket.
func NewS3ModelStore(client *s3.Client, cfg *config.Config) ModelStore {
	return &s3ModelStore{
		client: client,
		bucket: cfg.S3.ModelBucket,
		key:    cfg.Summarizer.ModelKey,
	}
}

// FetchModel downloads the model object into destDir. On failure the
// directory is removed so the next load attempt starts clean.
func (m *s3ModelStore) FetchModel(ctx context.Context, destDir string) error {
	res, err := m.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &m.bucket,
			Key:    &m.key,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to download model object: %w", err)
	}
	defer res.Body.Close()

	if err = os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create model dir: %w", err)
	}
	outFile, err := os.Create(filepath.Join(destDir, modelFileName))
	if err != nil {
		os.RemoveAll(destDir)
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, res.Body); err != nil {
		os.RemoveAll(destDir)
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}

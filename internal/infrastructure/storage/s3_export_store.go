// Package storage provides export store implementations for generated report files.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	reportapp "github.com/venuehq/backend/internal/application/report"
	infraconfig "github.com/venuehq/backend/internal/infrastructure/config"
)

// Ensure S3ExportStore implements ExportStore
var _ reportapp.ExportStore = (*S3ExportStore)(nil)

// S3ExportStore persists report exports in an S3 bucket.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, etc.)
type S3ExportStore struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3ExportStoreOption is a functional option for configuring S3ExportStore
type S3ExportStoreOption func(*S3ExportStore)

// WithLogger sets a custom logger for S3ExportStore
func WithLogger(logger *zap.Logger) S3ExportStoreOption {
	return func(s *S3ExportStore) {
		s.logger = logger
	}
}

// NewS3ExportStore creates a new S3ExportStore from configuration.
// Credentials come from the default AWS credential chain (environment,
// shared config, instance role).
func NewS3ExportStore(cfg infraconfig.ExportsConfig, opts ...S3ExportStoreOption) (*S3ExportStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("exports bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint == "" {
			return
		}
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, parseErr := url.Parse(endpoint); parseErr != nil {
			return
		}
		// Path-style addressing for S3-compatible stores behind a single host
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	store := &S3ExportStore{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup so the first export does not fail.
func (s *S3ExportStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating exports bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created it between the head and the create
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Put uploads a report file and returns its s3:// location
func (s *S3ExportStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if key == "" {
		return "", errors.New("export key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	s.logger.Debug("Export uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(body)),
	)
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// GetBucket returns the bucket name
func (s *S3ExportStore) GetBucket() string {
	return s.bucket
}

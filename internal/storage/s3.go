package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	appconfig "roa-marketplace-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 5 * time.Minute

// ImageStore issues pre-signed upload URLs for producto images on an
// S3-compatible bucket and builds their public URLs.
type ImageStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// New creates an image store from the storage configuration
func New(ctx context.Context, cfg appconfig.StorageConfig) (*ImageStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ImageStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// PresignUpload returns a pre-signed PUT URL for the given object key,
// valid for five minutes.
func (s *ImageStore) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}
	return request.URL, nil
}

// PublicURL builds the URL an uploaded object is served from
func (s *ImageStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

// UploadExpirySeconds is the presign validity exposed to clients
func (s *ImageStore) UploadExpirySeconds() int {
	return int(presignExpiry.Seconds())
}

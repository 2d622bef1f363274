package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	appconfig "wholesale-backend/internal/config"
	"wholesale-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MediaService uploads product and banner images to S3-compatible storage
// (R2 in production). A nil client means media is unconfigured and uploads
// fail with a clear error instead of a panic.
type MediaService struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewMediaService builds the S3 client from config. Missing credentials
// disable the service rather than failing startup.
func NewMediaService(ctx context.Context, cfg *appconfig.Config) (*MediaService, error) {
	if cfg.Media.AccessKey == "" || cfg.Media.SecretKey == "" {
		return &MediaService{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Media.AccessKey,
			cfg.Media.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Media.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure media storage: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.Endpoint)
		}
	})

	return &MediaService{
		client:    client,
		bucket:    cfg.Media.Bucket,
		publicURL: strings.TrimRight(cfg.Media.PublicURL, "/"),
	}, nil
}

// Enabled reports whether media storage is configured
func (s *MediaService) Enabled() bool {
	return s.client != nil
}

// Upload stores one image under a date-partitioned key and returns its
// public URL.
func (s *MediaService) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("media/%s/%s%s",
		timeutil.FormatIST(timeutil.Now(), timeutil.DateLayout), uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	logger.Info().Str("key", key).Msg("media uploaded")
	return s.publicURL + "/" + key, nil
}

// Delete removes an object by its public URL
func (s *MediaService) Delete(ctx context.Context, url string) error {
	if s.client == nil {
		return fmt.Errorf("media storage is not configured")
	}

	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == "" || !strings.HasPrefix(key, "media/") {
		return fmt.Errorf("url does not belong to media storage")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

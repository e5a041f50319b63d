// Package media uploads product, banner and content images to an S3
// compatible object store and serves their public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	cc "github.com/myutami16/camp-store/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store wraps an S3 client for a single bucket.
type Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New builds a store from the media section of the configuration.
func New(ctx context.Context, cfg cc.MediaConfig) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// objectKey shards uploads by date so the bucket stays browsable.
func objectKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v", folder, d.Year(), d.Month(), uuid.New())
}

// Upload stores the image and returns its public URL and object key.
func (s *Store) Upload(ctx context.Context, folder string, body io.Reader, size int64, contentType string) (string, string, error) {
	key := objectKey(folder)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	return s.publicURL + "/" + key, key, nil
}

// Delete removes a previously uploaded object.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

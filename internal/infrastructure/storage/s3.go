package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidshare/platform/internal/core/domain"
)

// S3 stores blobs as objects in a bucket, keyed by blob name under an
// optional prefix.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	maxBytes int64
}

// NewS3 loads the AWS configuration from the environment.
func NewS3(ctx context.Context, bucket, prefix string, maxBytes int64) (*S3, error) {
	if bucket == "" {
		return nil, errors.New("s3 storage: bucket is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		maxBytes: maxBytes,
	}, nil
}

// Save streams content to the bucket. The uploader aborts multipart uploads
// on error, so an oversized upload leaves no object behind.
func (s *S3) Save(ctx context.Context, name string, content io.Reader) (int64, error) {
	ext, err := checkName(name)
	if err != nil {
		return 0, err
	}

	body := newLimitReader(content, s.maxBytes)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        body,
		ContentType: aws.String(domain.VideoContentType(ext)),
	})
	if err != nil {
		if isTooLarge(err) {
			return 0, domain.ErrFileTooLarge
		}
		return 0, fmt.Errorf("%w: upload %s: %w", domain.ErrStorage, name, err)
	}
	return body.read, nil
}

// Delete removes the object. S3 reports success for missing keys.
func (s *S3) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrStorage, name, err)
	}
	return nil
}

func (s *S3) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

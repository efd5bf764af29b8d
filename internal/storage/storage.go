// Package storage downloads uploaded resumes from S3-compatible object storage (S3, R2, MinIO).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
)

// DefaultAttempts is how many times a download is tried before giving up.
const DefaultAttempts = 3

// MaxObjectSize bounds a downloaded resume.
const MaxObjectSize = 20 << 20

// ObjectGetter is the subset of the S3 client used here.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Error describes a failed download.
type Error struct {
	Key      string
	Message  string
	NotFound bool
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error for %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error for %s: %s", e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Store reads objects from one bucket.
type Store struct {
	client   ObjectGetter
	bucket   string
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
}

// New wraps an existing client.
func New(client ObjectGetter, bucket string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:   client,
		bucket:   bucket,
		attempts: DefaultAttempts,
		backoff:  500 * time.Millisecond,
		logger:   logger,
	}
}

// NewS3 builds an S3 client from configuration. A custom endpoint targets R2 or MinIO.
func NewS3(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return New(client, cfg.Bucket, logger), nil
}

// Download fetches key, retrying transient failures with linear backoff.
// Missing and oversized objects are not retried.
func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		data, err := s.get(ctx, key)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var se *Error
		if errors.As(err, &se) {
			return nil, err
		}
		if attempt == s.attempts {
			break
		}

		s.logger.Warn("download failed, retrying",
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, &Error{Key: key, Message: "download canceled", Cause: ctx.Err()}
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
	return nil, &Error{Key: key, Message: fmt.Sprintf("download failed after %d attempts", s.attempts), Cause: lastErr}
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, &Error{Key: key, Message: "object not found", NotFound: true, Cause: err}
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	if n > MaxObjectSize {
		return nil, &Error{Key: key, Message: fmt.Sprintf("object exceeds %d bytes", MaxObjectSize)}
	}
	return buf.Bytes(), nil
}

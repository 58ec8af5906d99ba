package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/resilience"
)

// Storage keeps case documents in one S3-compatible bucket.
type Storage struct {
	client   *minio.Client
	bucket   string
	region   string
	executor *resilience.Executor
}

func New(cfg config.Config, executor *resilience.Executor) (*Storage, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &Storage{
		client:   client,
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		executor: executor,
	}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.run(ctx, "s3.ensure_bucket", func(ctx context.Context) error {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", s.bucket, err)
		}
		if exists {
			return nil
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
		return nil
	})
}

// Save uploads data under key. Readers that know their length are sent in a
// single request; others fall back to a streaming multipart upload.
func (s *Storage) Save(ctx context.Context, key string, data io.Reader) error {
	size := int64(-1)
	if sized, ok := data.(interface{ Len() int }); ok {
		size = int64(sized.Len())
	}
	opts := minio.PutObjectOptions{ContentType: domain.MimeTypeFor(key)}

	// A consumed reader cannot be replayed, so uploads are never retried.
	return s.run(ctx, "s3.put_object", func(ctx context.Context) error {
		if _, err := s.client.PutObject(ctx, s.bucket, key, data, size, opts); err != nil {
			return fmt.Errorf("put object %s: %w", key, err)
		}
		return nil
	}, withoutRetry)
}

func (s *Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	var obj *minio.Object
	err := s.run(ctx, "s3.get_object", func(ctx context.Context) error {
		o, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return fmt.Errorf("get object %s: %w", key, err)
		}
		// GetObject is lazy; Stat surfaces a missing key before the caller reads.
		if _, err := o.Stat(); err != nil {
			_ = o.Close()
			return fmt.Errorf("stat object %s: %w", key, err)
		}
		obj = o
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "open object", err)
		}
		return nil, err
	}
	return obj, nil
}

type runOption func(*resilience.ErrorClassifier)

func withoutRetry(c *resilience.ErrorClassifier) {
	inner := *c
	*c = func(err error) resilience.ErrorClassification {
		class := inner(err)
		class.Retryable = false
		return class
	}
}

func (s *Storage) run(ctx context.Context, operation string, fn func(context.Context) error, opts ...runOption) error {
	classifier := classifyS3Error
	for _, opt := range opts {
		opt(&classifier)
	}

	var err error
	if s.executor != nil {
		err = s.executor.Execute(ctx, operation, fn, classifier)
	} else {
		err = fn(ctx)
	}
	return resilience.WrapTemporary(operation, err, classifyS3Error)
}

var classifyS3Error = resilience.TransientClassifier(isTransientS3Error)

func isTransientS3Error(err error) bool {
	if isNotFound(err) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	resp := minio.ToErrorResponse(unwrapAll(err))
	switch resp.Code {
	case "SlowDown", "SlowDownRead", "SlowDownWrite", "InternalError", "ServiceUnavailable", "RequestTimeout", "XMinioServerNotInitialized":
		return true
	}
	return resp.StatusCode >= 500
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(unwrapAll(err))
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

// unwrapAll digs out the innermost minio.ErrorResponse, which ToErrorResponse
// only recognizes by direct type assertion.
func unwrapAll(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}
	return err
}

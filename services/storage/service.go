package storage

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/interfaces"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/services/storage/aws_client"
)

// ObjectStorageService reads attachment blobs from a single bucket.
type ObjectStorageService struct {
	client     aws_client.S3Client
	bucketName string
	maxSize    int64
}

type StorageConfig struct {
	BucketName string
	MaxSize    int64 // zero disables the size check
}

func NewStorageService(client aws_client.S3Client, config StorageConfig) interfaces.StorageService {
	return &ObjectStorageService{
		client:     client,
		bucketName: config.BucketName,
		maxSize:    config.MaxSize,
	}
}

// Download retrieves an object, refusing objects larger than the configured limit.
func (s *ObjectStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Download")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.String("bucket", s.bucketName), log.String("key", key))

	if s.maxSize > 0 {
		size, err := s.client.Size(ctx, s.bucketName, key)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, errors.Wrapf(err, "failed to stat %s", key)
		}
		if size > s.maxSize {
			err = errors.Wrapf(mailbroker_errors.ErrAttachmentTooLarge, "%d bytes", size)
			tracing.TraceErr(span, err)
			return nil, err
		}
	}

	content, err := s.client.Download(ctx, s.bucketName, key)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(err, "failed to download %s", key)
	}
	span.LogFields(log.Int("size", len(content)))

	return content, nil
}

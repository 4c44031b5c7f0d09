package aws_client

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/internal/tracing"
)

var ErrObjectNotFound = errors.New("object not found")

// S3Client is the read side of an S3 compatible bucket.
type S3Client interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Size(ctx context.Context, bucket, key string) (int64, error)
}

type s3Client struct {
	Downloader *s3manager.Downloader
	S3         *s3.S3
	Config     *aws.Config
}

func NewS3Client(config *aws.Config) S3Client {
	s := session.Must(session.NewSession(config))
	return &s3Client{
		Downloader: s3manager.NewDownloader(s),
		S3:         s3.New(s),
		Config:     config,
	}
}

func (s *s3Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.Download")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	span.LogFields(log.String("bucket", bucket), log.String("key", key))

	buffer := &aws.WriteAtBuffer{}
	_, err := s.Downloader.DownloadWithContext(ctx, buffer,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
	if err != nil {
		err = translateError(err)
		tracing.TraceErr(span, err)
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Size returns the object's content length without fetching its body.
func (s *s3Client) Size(ctx context.Context, bucket, key string) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.Size")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)

	out, err := s.S3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		err = translateError(err)
		tracing.TraceErr(span, err)
		return 0, err
	}

	return aws.Int64Value(out.ContentLength), nil
}

func translateError(err error) error {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return errors.Wrap(ErrObjectNotFound, awsErr.Message())
		}
	}
	return err
}

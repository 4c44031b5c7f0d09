package attachment

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/internal/utils"
)

const unsupportedFileTypePrefix = "Unsupported file type: "

type attachmentService struct {
	log        logger.Logger
	fetcher    interfaces.AttachmentFetcher
	extractors map[enum.FileType]interfaces.TextExtractor
	publisher  interfaces.EventPublisher
	maxSize    int64
}

type Option func(*attachmentService)

// WithPublisher announces every extraction on the event exchange.
func WithPublisher(publisher interfaces.EventPublisher) Option {
	return func(s *attachmentService) {
		s.publisher = publisher
	}
}

// WithMaxSize rejects blobs larger than maxSize bytes before sniffing.
func WithMaxSize(maxSize int64) Option {
	return func(s *attachmentService) {
		s.maxSize = maxSize
	}
}

func NewAttachmentService(log logger.Logger, fetcher interfaces.AttachmentFetcher, extractors []interfaces.TextExtractor, opts ...Option) interfaces.AttachmentService {
	s := &attachmentService{
		log:        log,
		fetcher:    fetcher,
		extractors: make(map[enum.FileType]interfaces.TextExtractor, len(extractors)),
	}
	for _, extractor := range extractors {
		s.extractors[extractor.FileType()] = extractor
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractText fetches one attachment and returns its plain text.
// Fetch failures and unreadable PDFs come back as errors; an unsupported type or a
// DOCX without a body document is a result carrying Error.
func (s *attachmentService) ExtractText(ctx context.Context, threadId, attachmentId string) (*dto.ExtractionResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentService.ExtractText")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagThread(span, threadId)
	tracing.TagAttachment(span, attachmentId)

	if threadId == "" {
		return nil, mailbroker_errors.ErrMissingThreadId
	}
	if attachmentId == "" {
		return nil, mailbroker_errors.ErrMissingAttachId
	}

	data, err := s.fetcher.Fetch(ctx, threadId, attachmentId)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to fetch attachment")
	}

	result, err := s.ExtractBytes(ctx, data)
	s.publish(ctx, threadId, attachmentId, result, err)
	return result, err
}

// ExtractBytes sniffs data and dispatches it to the matching extractor.
func (s *attachmentService) ExtractBytes(ctx context.Context, data []byte) (*dto.ExtractionResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentService.ExtractBytes")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.Int("size", len(data)))

	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		err := errors.Wrapf(mailbroker_errors.ErrAttachmentTooLarge, "%d bytes", len(data))
		tracing.TraceErr(span, err)
		return nil, err
	}

	start := time.Now()
	fileType := utils.DetectFileType(data)
	tracing.TagFileType(span, fileType.Label())

	if !fileType.IsKnown() {
		result := dto.NewExtractionError(unsupportedFileTypePrefix+fileType.Label(), fileType)
		s.log.LogExtraction(fileType.Label(), len(data), time.Since(start), errors.New(*result.Error))
		return result, nil
	}

	extractor, ok := s.extractors[fileType]
	if !ok {
		err := errors.Errorf("no extractor registered for %s", fileType)
		tracing.TraceErr(span, err)
		return nil, err
	}

	result, err := extractor.Extract(ctx, data)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.LogExtraction(fileType.Label(), len(data), time.Since(start), err)
		return nil, err
	}

	var reported error
	if result.HasError() {
		reported = errors.New(*result.Error)
	}
	s.log.LogExtraction(fileType.Label(), len(data), time.Since(start), reported)
	span.LogFields(log.Int("text.length", result.TextLength()))
	return result, nil
}

// publish is best effort: a broker failure never changes the extraction outcome.
func (s *attachmentService) publish(ctx context.Context, threadId, attachmentId string, result *dto.ExtractionResult, extractErr error) {
	if s.publisher == nil {
		return
	}

	event := dto.AttachmentTextExtracted{
		ThreadId:     threadId,
		AttachmentId: attachmentId,
	}
	switch {
	case extractErr != nil:
		event.Error = extractErr.Error()
	case result != nil:
		event.FileType = result.FileType.Label()
		event.TextLength = result.TextLength()
		if result.HasError() {
			event.Error = *result.Error
		}
	}

	if err := s.publisher.PublishFanoutEvent(ctx, attachmentId, enum.ATTACHMENT, event); err != nil {
		s.log.Warnf("failed to publish extraction event for attachment %s: %v", attachmentId, err)
	}
}

package interfaces

import (
	"context"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/internal/enum"
)

// AttachmentFetcher returns the raw bytes of one attachment.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, threadId, attachmentId string) ([]byte, error)
}

// TextExtractor converts a blob of a single known file type into plain text.
// A non-nil result with Error set is a reported condition; a returned error is a failure.
type TextExtractor interface {
	FileType() enum.FileType
	Extract(ctx context.Context, data []byte) (*dto.ExtractionResult, error)
}

type AttachmentService interface {
	ExtractText(ctx context.Context, threadId, attachmentId string) (*dto.ExtractionResult, error)
	ExtractBytes(ctx context.Context, data []byte) (*dto.ExtractionResult, error)
}

package errors

import "github.com/pkg/errors"

var (
	// attachment errors
	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum size")
	ErrEmptyAttachment    = errors.New("attachment is empty")
	ErrInvalidPDF         = errors.New("invalid PDF")
	ErrInvalidZip         = errors.New("invalid ZIP archive")

	// request errors
	ErrMissingInboxId   = errors.New("inboxId is required")
	ErrMissingThreadId  = errors.New("threadId is required")
	ErrMissingMessageId = errors.New("messageId is required")
	ErrMissingAttachId  = errors.New("attachmentId is required")
)

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/safe"
	"github.com/customeros/mailbroker/internal/tracing"
)

// ExtractAttachmentText returns the plain text of a PDF or DOCX attachment.
func ExtractAttachmentText(attachments interfaces.AttachmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "AttachmentsHandler.ExtractText")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		threadId, attachmentId := c.Param("threadId"), c.Param("attachmentId")
		tracing.TagThread(span, threadId)
		tracing.TagAttachment(span, attachmentId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.ExtractionResult, error) {
			return attachments.ExtractText(ctx, threadId, attachmentId)
		}))
	}
}

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

func ListThreads(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ThreadsHandler.ListThreads")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.ListThreadsRequest
		if err := c.ShouldBindQuery(&request); err != nil {
			badRequest(c, span, err)
			return
		}
		request.InboxId = c.Param("inboxId")
		tracing.TagInbox(span, request.InboxId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.ListThreadsResponse, error) {
			return api.ListThreads(ctx, request)
		}))
	}
}

func GetThread(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ThreadsHandler.GetThread")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		request := dto.GetThreadRequest{InboxId: c.Param("inboxId"), ThreadId: c.Param("threadId")}
		tracing.TagInbox(span, request.InboxId)
		tracing.TagThread(span, request.ThreadId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.Thread, error) {
			return api.GetThread(ctx, request)
		}))
	}
}

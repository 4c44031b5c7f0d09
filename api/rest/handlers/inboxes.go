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

func ListInboxes(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "InboxesHandler.ListInboxes")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.ListInboxesRequest
		if err := c.ShouldBindQuery(&request); err != nil {
			badRequest(c, span, err)
			return
		}

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.ListInboxesResponse, error) {
			return api.ListInboxes(ctx, request)
		}))
	}
}

func GetInbox(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "InboxesHandler.GetInbox")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		request := dto.GetInboxRequest{InboxId: c.Param("inboxId")}
		tracing.TagInbox(span, request.InboxId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.Inbox, error) {
			return api.GetInbox(ctx, request)
		}))
	}
}

func CreateInbox(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "InboxesHandler.CreateInbox")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.CreateInboxRequest
		if err := bindOptionalJSON(c, &request); err != nil {
			badRequest(c, span, err)
			return
		}

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.Inbox, error) {
			return api.CreateInbox(ctx, request)
		}))
	}
}

func DeleteInbox(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "InboxesHandler.DeleteInbox")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		request := dto.DeleteInboxRequest{InboxId: c.Param("inboxId")}
		tracing.TagInbox(span, request.InboxId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.DeleteInboxResponse, error) {
			return api.DeleteInbox(ctx, request)
		}))
	}
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	custom_err "github.com/customeros/mailbroker/api/errors"
	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/safe"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/internal/utils"
)

func SendMessage(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MessagesHandler.SendMessage")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.SendMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			badRequest(c, span, err)
			return
		}
		request.InboxId = c.Param("inboxId")
		tracing.TagInbox(span, request.InboxId)

		errs := custom_err.NewMultiErrors()
		if len(request.To) == 0 {
			errs.Add("to", "at least one recipient is required", nil)
		}
		request.To = normaliseAddresses(errs, "to", request.To)
		request.Cc = normaliseAddresses(errs, "cc", request.Cc)
		request.Bcc = normaliseAddresses(errs, "bcc", request.Bcc)
		request.ReplyTo = normaliseAddresses(errs, "reply_to", request.ReplyTo)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, safe.FailureMessage(errs.Error()))
			return
		}

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.SendMessageResponse, error) {
			return api.SendMessage(ctx, request)
		}))
	}
}

func ReplyToMessage(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MessagesHandler.ReplyToMessage")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.ReplyToMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			badRequest(c, span, err)
			return
		}
		request.InboxId = c.Param("inboxId")
		request.MessageId = c.Param("messageId")
		tracing.TagInbox(span, request.InboxId)
		tracing.TagEntity(span, request.MessageId)

		errs := custom_err.NewMultiErrors()
		request.To = normaliseAddresses(errs, "to", request.To)
		request.Cc = normaliseAddresses(errs, "cc", request.Cc)
		request.Bcc = normaliseAddresses(errs, "bcc", request.Bcc)
		request.ReplyTo = normaliseAddresses(errs, "reply_to", request.ReplyTo)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, safe.FailureMessage(errs.Error()))
			return
		}

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.SendMessageResponse, error) {
			return api.ReplyToMessage(ctx, request)
		}))
	}
}

func UpdateMessage(api interfaces.MailboxAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MessagesHandler.UpdateMessage")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.UpdateMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			badRequest(c, span, err)
			return
		}
		request.InboxId = c.Param("inboxId")
		request.MessageId = c.Param("messageId")
		tracing.TagInbox(span, request.InboxId)
		tracing.TagEntity(span, request.MessageId)

		respond(c, span, safe.Call(ctx, func(ctx context.Context) (*dto.Message, error) {
			return api.UpdateMessage(ctx, request)
		}))
	}
}

// normaliseAddresses returns the clean, de-duplicated form of every valid address and records the invalid ones.
func normaliseAddresses(errs *custom_err.MultiErrors, field string, addresses []string) []string {
	if len(addresses) == 0 {
		return addresses
	}

	clean := make([]string, 0, len(addresses))
	for i, address := range addresses {
		validation := mailvalidate.ValidateEmailSyntax(address)
		if !validation.IsValid {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("invalid email address %q", address), nil)
			continue
		}
		clean = append(clean, validation.CleanEmail)
	}
	return utils.UniqueEmails(clean)
}

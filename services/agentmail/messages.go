package agentmail

import (
	"context"
	"net/http"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailbroker/dto"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
)

func (c *client) SendMessage(ctx context.Context, request dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.SendMessage")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}

	var response dto.SendMessageResponse
	path := "/inboxes/" + pathSegment(request.InboxId) + "/messages/send"
	err := c.call(ctx, span, http.MethodPost, path, nil, request, &response)
	if err != nil {
		return nil, err
	}
	tracing.TagThread(span, response.ThreadId)
	return &response, nil
}

func (c *client) ReplyToMessage(ctx context.Context, request dto.ReplyToMessageRequest) (*dto.SendMessageResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.ReplyToMessage")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}
	if request.MessageId == "" {
		return nil, mailbroker_errors.ErrMissingMessageId
	}

	var response dto.SendMessageResponse
	path := "/inboxes/" + pathSegment(request.InboxId) + "/messages/" + pathSegment(request.MessageId) + "/reply"
	err := c.call(ctx, span, http.MethodPost, path, nil, request, &response)
	if err != nil {
		return nil, err
	}
	tracing.TagThread(span, response.ThreadId)
	return &response, nil
}

func (c *client) UpdateMessage(ctx context.Context, request dto.UpdateMessageRequest) (*dto.Message, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.UpdateMessage")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}
	if request.MessageId == "" {
		return nil, mailbroker_errors.ErrMissingMessageId
	}

	var message dto.Message
	path := "/inboxes/" + pathSegment(request.InboxId) + "/messages/" + pathSegment(request.MessageId)
	err := c.call(ctx, span, http.MethodPatch, path, nil, request, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

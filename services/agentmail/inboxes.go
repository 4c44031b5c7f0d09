package agentmail

import (
	"context"
	"net/http"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailbroker/dto"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/internal/utils"
)

func (c *client) ListInboxes(ctx context.Context, request dto.ListInboxesRequest) (*dto.ListInboxesResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.ListInboxes")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)

	var response dto.ListInboxesResponse
	err := c.call(ctx, span, http.MethodGet, "/inboxes", paginationQuery(request.Limit, request.PageToken), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *client) GetInbox(ctx context.Context, request dto.GetInboxRequest) (*dto.Inbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.GetInbox")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}

	var inbox dto.Inbox
	err := c.call(ctx, span, http.MethodGet, "/inboxes/"+pathSegment(request.InboxId), nil, nil, &inbox)
	if err != nil {
		return nil, err
	}
	return &inbox, nil
}

// CreateInbox assigns a generated client id when none is given so retries stay idempotent upstream.
func (c *client) CreateInbox(ctx context.Context, request dto.CreateInboxRequest) (*dto.Inbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.CreateInbox")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)

	if request.ClientId == "" {
		request.ClientId = utils.GenerateNanoIDWithPrefix("inbox", 16)
	}
	span.LogKV("clientId", request.ClientId)

	var inbox dto.Inbox
	err := c.call(ctx, span, http.MethodPost, "/inboxes", nil, request, &inbox)
	if err != nil {
		return nil, err
	}
	tracing.TagInbox(span, inbox.InboxId)
	return &inbox, nil
}

func (c *client) DeleteInbox(ctx context.Context, request dto.DeleteInboxRequest) (*dto.DeleteInboxResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.DeleteInbox")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}

	err := c.call(ctx, span, http.MethodDelete, "/inboxes/"+pathSegment(request.InboxId), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteInboxResponse{InboxId: request.InboxId, Deleted: true}, nil
}

package agentmail

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"

	"github.com/customeros/mailbroker/dto"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
)

func (c *client) ListThreads(ctx context.Context, request dto.ListThreadsRequest) (*dto.ListThreadsResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.ListThreads")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}

	query := paginationQuery(request.Limit, request.PageToken)
	for _, label := range request.Labels {
		query.Add("labels", label)
	}
	if request.Before != nil {
		query.Set("before", request.Before.UTC().Format(time.RFC3339))
	}
	if request.After != nil {
		query.Set("after", request.After.UTC().Format(time.RFC3339))
	}
	if request.Ascending != nil {
		query.Set("ascending", strconv.FormatBool(*request.Ascending))
	}

	var response dto.ListThreadsResponse
	err := c.call(ctx, span, http.MethodGet, "/inboxes/"+pathSegment(request.InboxId)+"/threads", query, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *client) GetThread(ctx context.Context, request dto.GetThreadRequest) (*dto.Thread, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.GetThread")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagInbox(span, request.InboxId)
	tracing.TagThread(span, request.ThreadId)

	if request.InboxId == "" {
		return nil, mailbroker_errors.ErrMissingInboxId
	}
	if request.ThreadId == "" {
		return nil, mailbroker_errors.ErrMissingThreadId
	}

	var thread dto.Thread
	path := "/inboxes/" + pathSegment(request.InboxId) + "/threads/" + pathSegment(request.ThreadId)
	err := c.call(ctx, span, http.MethodGet, path, nil, nil, &thread)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetAttachment downloads the raw attachment bytes, capped at the configured maximum size.
func (c *client) GetAttachment(ctx context.Context, request dto.GetAttachmentRequest) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AgentMailClient.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagThread(span, request.ThreadId)
	tracing.TagAttachment(span, request.AttachmentId)

	if request.ThreadId == "" {
		return nil, mailbroker_errors.ErrMissingThreadId
	}
	if request.AttachmentId == "" {
		return nil, mailbroker_errors.ErrMissingAttachId
	}

	path := "/threads/" + pathSegment(request.ThreadId) + "/attachments/" + pathSegment(request.AttachmentId)
	req, err := c.newRequest(ctx, span, http.MethodGet, path, nil, nil)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	data, err := c.do(req, c.maxAttachmentSize)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogFields(log.Int("size", len(data)))
	return data, nil
}

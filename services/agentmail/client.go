package agentmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/config"
	"github.com/customeros/mailbroker/interfaces"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/tracing"
)

// APIError is a non-2xx answer from the mailbox API.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("agentmail: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("agentmail: status %d", e.StatusCode)
}

type errorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type client struct {
	log               logger.Logger
	baseUrl           string
	apiKey            string
	maxAttachmentSize int64
	httpClient        *http.Client
}

func NewClient(log logger.Logger, cfg *config.AgentMailConfig, maxAttachmentSize int64) interfaces.MailboxAPI {
	return &client{
		log:               log,
		baseUrl:           strings.TrimRight(cfg.Url, "/"),
		apiKey:            cfg.ApiKey,
		maxAttachmentSize: maxAttachmentSize,
		httpClient:        &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *client) newRequest(ctx context.Context, span opentracing.Span, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	span.LogFields(log.String("http.method", method), log.String("http.path", path))
	return tracing.InjectSpanContextIntoHTTPRequest(req, span), nil
}

// do sends the request and returns the response body, bounded by limit when positive.
func (c *client) do(req *http.Request, limit int64) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, newAPIError(resp.StatusCode, raw)
	}

	if limit <= 0 {
		data, err := io.ReadAll(resp.Body)
		return data, errors.Wrap(err, "failed to read response body")
	}

	if resp.ContentLength > limit {
		return nil, errors.Wrapf(mailbroker_errors.ErrAttachmentTooLarge, "%d bytes", resp.ContentLength)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(mailbroker_errors.ErrAttachmentTooLarge, "more than %d bytes", limit)
	}
	return data, nil
}

func newAPIError(statusCode int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(raw)}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Name != "":
			apiErr.Message = body.Name
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

func (c *client) call(ctx context.Context, span opentracing.Span, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, span, method, path, query, body)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	start := time.Now()
	data, err := c.do(req, 0)
	span.LogFields(log.String("took", time.Since(start).String()))
	if err != nil {
		tracing.TraceErr(span, err)
		c.log.Warnf("agentmail %s %s: %v", method, path, err)
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		err = errors.Wrapf(err, "failed to decode %s %s response", method, path)
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func pathSegment(value string) string {
	return url.PathEscape(value)
}

func paginationQuery(limit *int, pageToken string) url.Values {
	query := url.Values{}
	if limit != nil {
		query.Set("limit", strconv.Itoa(*limit))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}
	return query
}

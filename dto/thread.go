package dto

import "time"

type ThreadItem struct {
	InboxId       string       `json:"inbox_id"`
	ThreadId      string       `json:"thread_id"`
	Labels        []string     `json:"labels"`
	Timestamp     time.Time    `json:"timestamp"`
	Senders       []string     `json:"senders"`
	Recipients    []string     `json:"recipients"`
	Subject       string       `json:"subject,omitempty"`
	Preview       string       `json:"preview,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty"`
	LastMessageId string       `json:"last_message_id"`
	MessageCount  int          `json:"message_count"`
	Size          int64        `json:"size"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CreatedAt     time.Time    `json:"created_at"`
}

type Thread struct {
	ThreadItem
	Messages []Message `json:"messages"`
}

type Attachment struct {
	AttachmentId string `json:"attachment_id"`
	Filename     string `json:"filename,omitempty"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type,omitempty"`
	ContentId    string `json:"content_id,omitempty"`
	Inline       bool   `json:"inline,omitempty"`
}

type ListThreadsRequest struct {
	InboxId   string     `form:"-" json:"-"`
	Limit     *int       `form:"limit" json:"-"`
	PageToken string     `form:"pageToken" json:"-"`
	Labels    []string   `form:"labels" json:"-"`
	Before    *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00" json:"-"`
	After     *time.Time `form:"after" time_format:"2006-01-02T15:04:05Z07:00" json:"-"`
	Ascending *bool      `form:"ascending" json:"-"`
}

type ListThreadsResponse struct {
	Count         int          `json:"count"`
	Limit         *int         `json:"limit,omitempty"`
	NextPageToken *string      `json:"next_page_token,omitempty"`
	Threads       []ThreadItem `json:"threads"`
}

type GetThreadRequest struct {
	InboxId  string `json:"-"`
	ThreadId string `json:"-"`
}

type GetAttachmentRequest struct {
	ThreadId     string `json:"threadId"`
	AttachmentId string `json:"attachmentId"`
}

package dto

import "time"

type Message struct {
	InboxId     string            `json:"inbox_id"`
	ThreadId    string            `json:"thread_id"`
	MessageId   string            `json:"message_id"`
	Labels      []string          `json:"labels"`
	Timestamp   time.Time         `json:"timestamp"`
	From        string            `json:"from"`
	ReplyTo     []string          `json:"reply_to,omitempty"`
	To          []string          `json:"to"`
	Cc          []string          `json:"cc,omitempty"`
	Bcc         []string          `json:"bcc,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Preview     string            `json:"preview,omitempty"`
	Text        string            `json:"text,omitempty"`
	Html        string            `json:"html,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	InReplyTo   string            `json:"in_reply_to,omitempty"`
	References  []string          `json:"references,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Size        int64             `json:"size"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OutgoingAttachment is sent inline (base64 Content) or by URL.
type OutgoingAttachment struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content,omitempty"`
	Url         string `json:"url,omitempty"`
}

type SendMessageRequest struct {
	InboxId     string               `json:"-"`
	Labels      []string             `json:"labels,omitempty"`
	ReplyTo     []string             `json:"reply_to,omitempty"`
	To          []string             `json:"to"`
	Cc          []string             `json:"cc,omitempty"`
	Bcc         []string             `json:"bcc,omitempty"`
	Subject     string               `json:"subject,omitempty"`
	Text        string               `json:"text,omitempty"`
	Html        string               `json:"html,omitempty"`
	Attachments []OutgoingAttachment `json:"attachments,omitempty"`
	Headers     map[string]string    `json:"headers,omitempty"`
}

type SendMessageResponse struct {
	MessageId string `json:"message_id"`
	ThreadId  string `json:"thread_id"`
}

type ReplyToMessageRequest struct {
	InboxId     string               `json:"-"`
	MessageId   string               `json:"-"`
	Labels      []string             `json:"labels,omitempty"`
	ReplyTo     []string             `json:"reply_to,omitempty"`
	To          []string             `json:"to,omitempty"`
	Cc          []string             `json:"cc,omitempty"`
	Bcc         []string             `json:"bcc,omitempty"`
	ReplyAll    bool                 `json:"reply_all,omitempty"`
	Text        string               `json:"text,omitempty"`
	Html        string               `json:"html,omitempty"`
	Attachments []OutgoingAttachment `json:"attachments,omitempty"`
	Headers     map[string]string    `json:"headers,omitempty"`
}

type UpdateMessageRequest struct {
	InboxId      string   `json:"-"`
	MessageId    string   `json:"-"`
	AddLabels    []string `json:"add_labels,omitempty"`
	RemoveLabels []string `json:"remove_labels,omitempty"`
}

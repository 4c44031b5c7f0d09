package dto

import "github.com/customeros/mailbroker/internal/enum"

type Event struct {
	Event    EventDetails  `json:"event"`
	Metadata EventMetadata `json:"metadata"`
}

type EventDetails struct {
	Id         string          `json:"id"`
	EntityId   string          `json:"entityId"`
	EntityType enum.EntityType `json:"entityType"`
	EventType  string          `json:"eventType"`
	Data       interface{}     `json:"data"`
}

type EventMetadata struct {
	UberTraceId string `json:"uber-trace-id"`
	AppSource   string `json:"appSource"`
	RequestId   string `json:"requestId"`
	Timestamp   string `json:"timestamp"`
}

type AttachmentTextExtracted struct {
	ThreadId     string `json:"threadId"`
	AttachmentId string `json:"attachmentId"`
	FileType     string `json:"fileType"`
	TextLength   int    `json:"textLength"`
	Error        string `json:"error,omitempty"`
}

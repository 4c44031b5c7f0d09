package interfaces

import (
	"context"

	"github.com/customeros/mailbroker/dto"
)

// MailboxAPI is the remote mailbox-management service.
type MailboxAPI interface {
	ListInboxes(ctx context.Context, request dto.ListInboxesRequest) (*dto.ListInboxesResponse, error)
	GetInbox(ctx context.Context, request dto.GetInboxRequest) (*dto.Inbox, error)
	CreateInbox(ctx context.Context, request dto.CreateInboxRequest) (*dto.Inbox, error)
	DeleteInbox(ctx context.Context, request dto.DeleteInboxRequest) (*dto.DeleteInboxResponse, error)

	ListThreads(ctx context.Context, request dto.ListThreadsRequest) (*dto.ListThreadsResponse, error)
	GetThread(ctx context.Context, request dto.GetThreadRequest) (*dto.Thread, error)
	GetAttachment(ctx context.Context, request dto.GetAttachmentRequest) ([]byte, error)

	SendMessage(ctx context.Context, request dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ReplyToMessage(ctx context.Context, request dto.ReplyToMessageRequest) (*dto.SendMessageResponse, error)
	UpdateMessage(ctx context.Context, request dto.UpdateMessageRequest) (*dto.Message, error)
}

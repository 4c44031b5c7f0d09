package attachment

import (
	"context"
	"strings"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
)

type apiFetcher struct {
	api interfaces.MailboxAPI
}

// NewAPIFetcher downloads attachments through the mailbox API.
func NewAPIFetcher(api interfaces.MailboxAPI) interfaces.AttachmentFetcher {
	return &apiFetcher{api: api}
}

func (f *apiFetcher) Fetch(ctx context.Context, threadId, attachmentId string) ([]byte, error) {
	return f.api.GetAttachment(ctx, dto.GetAttachmentRequest{ThreadId: threadId, AttachmentId: attachmentId})
}

type bucketFetcher struct {
	storage   interfaces.StorageService
	keyPrefix string
}

// NewBucketFetcher reads attachments mirrored into object storage under
// {keyPrefix}/{threadId}/attachments/{attachmentId}.
func NewBucketFetcher(storage interfaces.StorageService, keyPrefix string) interfaces.AttachmentFetcher {
	return &bucketFetcher{storage: storage, keyPrefix: strings.Trim(keyPrefix, "/")}
}

func (f *bucketFetcher) Fetch(ctx context.Context, threadId, attachmentId string) ([]byte, error) {
	return f.storage.Download(ctx, f.objectKey(threadId, attachmentId))
}

func (f *bucketFetcher) objectKey(threadId, attachmentId string) string {
	key := threadId + "/attachments/" + attachmentId
	if f.keyPrefix == "" {
		return key
	}
	return f.keyPrefix + "/" + key
}

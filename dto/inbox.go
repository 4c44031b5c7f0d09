package dto

import "time"

type Inbox struct {
	InboxId     string    `json:"inbox_id"`
	PodId       string    `json:"pod_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	ClientId    string    `json:"client_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListInboxesRequest struct {
	Limit     *int   `form:"limit" json:"-"`
	PageToken string `form:"pageToken" json:"-"`
}

type ListInboxesResponse struct {
	Count         int     `json:"count"`
	Limit         *int    `json:"limit,omitempty"`
	NextPageToken *string `json:"next_page_token,omitempty"`
	Inboxes       []Inbox `json:"inboxes"`
}

type GetInboxRequest struct {
	InboxId string `json:"-"`
}

type CreateInboxRequest struct {
	Username    string `json:"username,omitempty"`
	Domain      string `json:"domain,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	ClientId    string `json:"client_id,omitempty"`
}

type DeleteInboxRequest struct {
	InboxId string `json:"-"`
}

type DeleteInboxResponse struct {
	InboxId string `json:"inbox_id"`
	Deleted bool   `json:"deleted"`
}

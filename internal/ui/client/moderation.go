package client

import (
	"context"
	"fmt"
	"net/http"
)

// ModerationQueueItem is a read-mostly display record; status transitions
// happen server-side and the client only triggers them via the resolve calls.
type ModerationQueueItem struct {
	ID           int64  `json:"id"`
	ListingID    int64  `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	ReportedBy   string `json:"reported_by"`
	Reason       string `json:"reason"`
	Status       string `json:"status"` // pending|upheld|reduced|overturned
	ReportedAt   string `json:"reported_at"`
}

type ModerationQueueParams struct {
	Page     int
	PageSize int
	Status   string
}

type ModerationQueueResponse struct {
	Items   []ModerationQueueItem `json:"items"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"has_more"`
}

// GetModerationQueue lists reported listings awaiting review (moderator only)
func (c *Client) GetModerationQueue(ctx context.Context, params ModerationQueueParams) (*ModerationQueueResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "status", params.Status)

	var resp ModerationQueueResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/moderation/queue",
		query:        q,
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type ResolveModerationItemRequest struct {
	Resolution string `json:"resolution"` // upheld|reduced|overturned
	Note       string `json:"note,omitempty"`
}

// ResolveModerationItem submits a moderation decision. Whether the item can
// still be resolved is enforced server-side - the client just re-fetches.
func (c *Client) ResolveModerationItem(ctx context.Context, id int64, req ResolveModerationItemRequest) (*ModerationQueueItem, error) {
	var item ModerationQueueItem
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/moderation/queue/%d/resolve", id),
		body:         req,
		requiresAuth: true,
		out:          &item,
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Appeal is a user's challenge to a moderation decision
type Appeal struct {
	ID           int64  `json:"id"`
	QueueItemID  int64  `json:"queue_item_id"`
	AppellantID  string `json:"appellant_id"`
	Appellant    string `json:"appellant"`
	Argument     string `json:"argument"`
	Status       string `json:"status"` // pending|upheld|reduced|overturned
	SubmittedAt  string `json:"submitted_at"`
	ResolvedAt   string `json:"resolved_at,omitempty"`
	ResolvedNote string `json:"resolved_note,omitempty"`
}

type AppealParams struct {
	Page     int
	PageSize int
	Status   string
}

type AppealsResponse struct {
	Items   []Appeal `json:"items"`
	Total   int      `json:"total"`
	HasMore bool     `json:"has_more"`
}

func (c *Client) GetAppeals(ctx context.Context, params AppealParams) (*AppealsResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "status", params.Status)

	var resp AppealsResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/moderation/appeals",
		query:        q,
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAppeal(ctx context.Context, id int64) (*Appeal, error) {
	var appeal Appeal
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         fmt.Sprintf("/moderation/appeals/%d", id),
		requiresAuth: true,
		out:          &appeal,
	})
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

type ResolveAppealRequest struct {
	Resolution string `json:"resolution"` // upheld|reduced|overturned
	Note       string `json:"note,omitempty"`
}

func (c *Client) ResolveAppeal(ctx context.Context, id int64, req ResolveAppealRequest) (*Appeal, error) {
	var appeal Appeal
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/moderation/appeals/%d/resolve", id),
		body:         req,
		requiresAuth: true,
		out:          &appeal,
	})
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

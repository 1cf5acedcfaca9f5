package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TradeDispute is a disagreement over a completed trade. The lifecycle
// (open -> evidence_requested -> resolved, assignment before resolution) is
// enforced server-side; the client triggers transitions and re-fetches.
type TradeDispute struct {
	ID           int64           `json:"id"`
	TradeID      int64           `json:"trade_id"`
	ClaimantID   string          `json:"claimant_id"`
	Claimant     string          `json:"claimant"`
	RespondentID string          `json:"respondent_id"`
	Respondent   string          `json:"respondent"`
	Summary      string          `json:"summary"`
	Status       string          `json:"status"` // open|evidence_requested|resolved
	AssignedTo   string          `json:"assigned_to,omitempty"`
	Evidence     json.RawMessage `json:"evidence,omitempty"` // opaque structured evidence, rendered verbatim
	OpenedAt     string          `json:"opened_at"`
	ResolvedAt   string          `json:"resolved_at,omitempty"`
	Outcome      string          `json:"outcome,omitempty"`
}

type DisputeParams struct {
	Page     int
	PageSize int
	Status   string
	Assigned *bool
}

type DisputesResponse struct {
	Items   []TradeDispute `json:"items"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

// GetDisputes lists trade disputes (moderator only)
func (c *Client) GetDisputes(ctx context.Context, params DisputeParams) (*DisputesResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "status", params.Status)
	setIfNotNil(q, "assigned", params.Assigned)

	var resp DisputesResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/trades/disputes",
		query:        q,
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetDispute(ctx context.Context, id int64) (*TradeDispute, error) {
	var dispute TradeDispute
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         fmt.Sprintf("/trades/disputes/%d", id),
		requiresAuth: true,
		out:          &dispute,
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// AssignDispute assigns the dispute to the calling moderator. The backend
// rejects resolution of unassigned disputes.
func (c *Client) AssignDispute(ctx context.Context, id int64) (*TradeDispute, error) {
	var dispute TradeDispute
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/trades/disputes/%d/assign", id),
		requiresAuth: true,
		out:          &dispute,
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

type RequestEvidenceRequest struct {
	Message string `json:"message"`
}

// RequestDisputeEvidence asks both parties for additional evidence
func (c *Client) RequestDisputeEvidence(ctx context.Context, id int64, message string) (*TradeDispute, error) {
	var dispute TradeDispute
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/trades/disputes/%d/request-evidence", id),
		body:         RequestEvidenceRequest{Message: message},
		requiresAuth: true,
		out:          &dispute,
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

type ResolveDisputeRequest struct {
	Outcome string `json:"outcome"`
	Note    string `json:"note,omitempty"`
}

func (c *Client) ResolveDispute(ctx context.Context, id int64, req ResolveDisputeRequest) (*TradeDispute, error) {
	var dispute TradeDispute
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/trades/disputes/%d/resolve", id),
		body:         req,
		requiresAuth: true,
		out:          &dispute,
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
)

// QuoteRequest is a buyer's request for a seller price on a set of cards
type QuoteRequest struct {
	ID          int64   `json:"id"`
	SellerID    string  `json:"seller_id"`
	SellerName  string  `json:"seller_name"`
	CardCount   int     `json:"card_count"`
	QuotedTotal float64 `json:"quoted_total"`
	Status      string  `json:"status"` // requested|quoted|accepted|declined|expired
	RequestedAt string  `json:"requested_at"`
	ExpiresAt   string  `json:"expires_at,omitempty"`
}

type QuoteParams struct {
	Page     int
	PageSize int
	Status   string
}

type QuotesResponse struct {
	Items   []QuoteRequest `json:"items"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

func (c *Client) GetQuoteRequests(ctx context.Context, params QuoteParams) (*QuotesResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "status", params.Status)

	var resp QuotesResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/quotes",
		query:        q,
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type CreateQuoteRequestLine struct {
	CardID   int64 `json:"card_id"`
	Quantity int   `json:"quantity"`
	IsFoil   bool  `json:"is_foil"`
}

type CreateQuoteRequestRequest struct {
	SellerID string                   `json:"seller_id"`
	Lines    []CreateQuoteRequestLine `json:"lines"`
	Note     string                   `json:"note,omitempty"`
}

func (c *Client) CreateQuoteRequest(ctx context.Context, req CreateQuoteRequestRequest) (*QuoteRequest, error) {
	var quote QuoteRequest
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/quotes",
		body:         req,
		requiresAuth: true,
		out:          &quote,
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) AcceptQuote(ctx context.Context, id int64) (*QuoteRequest, error) {
	var quote QuoteRequest
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/quotes/%d/accept", id),
		requiresAuth: true,
		out:          &quote,
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) DeclineQuote(ctx context.Context, id int64) (*QuoteRequest, error) {
	var quote QuoteRequest
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         fmt.Sprintf("/quotes/%d/decline", id),
		requiresAuth: true,
		out:          &quote,
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

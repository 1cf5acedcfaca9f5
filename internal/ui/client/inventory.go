package client

import (
	"context"
	"fmt"
	"net/http"
)

// InventoryItem represents one holding in the user's collection. The numeric
// aggregates are computed server-side; the client never mutates them directly.
type InventoryItem struct {
	ID            int64   `json:"id"`
	CardID        int64   `json:"card_id"`
	CardName      string  `json:"card_name"`
	SetCode       string  `json:"set_code"`
	Condition     string  `json:"condition"`
	IsFoil        bool    `json:"is_foil"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	MarketPrice   float64 `json:"market_price"`
	GainLoss      float64 `json:"gain_loss"`
	AcquiredAt    string  `json:"acquired_at"`
}

type InventoryParams struct {
	Page     int
	PageSize int
	Search   string
	IsFoil   *bool
}

type InventoryListResponse struct {
	Items   []InventoryItem `json:"items"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
}

// GetInventory lists the user's inventory with optional search/foil filters
func (c *Client) GetInventory(ctx context.Context, params InventoryParams) (*InventoryListResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "search", params.Search)
	setIfNotNil(q, "is_foil", params.IsFoil)

	var resp InventoryListResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/inventory",
		query:        q,
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type AddInventoryItemRequest struct {
	CardID        int64   `json:"card_id"`
	Condition     string  `json:"condition"`
	IsFoil        bool    `json:"is_foil"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
}

func (c *Client) AddInventoryItem(ctx context.Context, req AddInventoryItemRequest) (*InventoryItem, error) {
	var item InventoryItem
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/inventory",
		body:         req,
		requiresAuth: true,
		out:          &item,
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type UpdateInventoryItemRequest struct {
	Condition     string  `json:"condition,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id int64, req UpdateInventoryItemRequest) (*InventoryItem, error) {
	var item InventoryItem
	err := c.do(ctx, apiRequest{
		method:       http.MethodPut,
		path:         fmt.Sprintf("/inventory/%d", id),
		body:         req,
		requiresAuth: true,
		out:          &item,
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id int64) error {
	return c.do(ctx, apiRequest{
		method:       http.MethodDelete,
		path:         fmt.Sprintf("/inventory/%d", id),
		requiresAuth: true,
	})
}

// CollectionStats is the server-computed aggregate for the dashboard
type CollectionStats struct {
	TotalCards     int     `json:"total_cards"`
	UniqueCards    int     `json:"unique_cards"`
	TotalValue     float64 `json:"total_value"`
	TotalCost      float64 `json:"total_cost"`
	GainLoss       float64 `json:"gain_loss"`
	GainLossPct    float64 `json:"gain_loss_pct"`
	LastComputedAt string  `json:"last_computed_at"`
}

func (c *Client) GetCollectionStats(ctx context.Context) (*CollectionStats, error) {
	var stats CollectionStats
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/inventory/stats",
		requiresAuth: true,
		out:          &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RefreshCollectionStats asks the backend to recompute the collection
// aggregates. Refresh-class: runs under the extended timeout.
func (c *Client) RefreshCollectionStats(ctx context.Context) (*CollectionStats, error) {
	var stats CollectionStats
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/inventory/stats/refresh",
		requiresAuth: true,
		out:          &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Recommendation is a server-generated buy/sell/hold suggestion. The pricing
// model behind it is opaque to the front end.
type Recommendation struct {
	CardID      int64   `json:"card_id"`
	CardName    string  `json:"card_name"`
	Action      string  `json:"action"` // "buy", "sell" or "hold"
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	TargetPrice float64 `json:"target_price"`
}

type RecommendationsResponse struct {
	Items       []Recommendation `json:"items"`
	GeneratedAt string           `json:"generated_at"`
}

func (c *Client) GetRecommendations(ctx context.Context) (*RecommendationsResponse, error) {
	var resp RecommendationsResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/recommendations",
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshRecommendations triggers recommendation regeneration server-side.
// Refresh-class: runs under the extended timeout.
func (c *Client) RefreshRecommendations(ctx context.Context) (*RecommendationsResponse, error) {
	var resp RecommendationsResponse
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/recommendations/refresh",
		requiresAuth: true,
		out:          &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Card represents a card record as returned by the catalogue endpoints
type Card struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	SetCode     string  `json:"set_code"`
	SetName     string  `json:"set_name"`
	Rarity      string  `json:"rarity"`
	IsFoil      bool    `json:"is_foil"`
	MarketPrice float64 `json:"market_price"`
	PriceChange float64 `json:"price_change_24h"`
	ImageURL    string  `json:"image_url"`
}

// CardSearchParams represents the card search filters. Unset fields are
// excluded from the query string.
type CardSearchParams struct {
	Page     int
	PageSize int
	Name     string
	Set      string
	Rarity   string
	IsFoil   *bool
	Sort     string // e.g. "price_desc", "name_asc"
}

type CardSearchResponse struct {
	Items   []Card `json:"items"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
}

// SearchCards searches the card catalogue
func (c *Client) SearchCards(ctx context.Context, params CardSearchParams) (*CardSearchResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "name", params.Name)
	setIfNotEmpty(q, "set", params.Set)
	setIfNotEmpty(q, "rarity", params.Rarity)
	setIfNotNil(q, "is_foil", params.IsFoil)
	setIfNotEmpty(q, "sort", params.Sort)

	var resp CardSearchResponse
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/cards",
		query:  q,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCard fetches a single card by id
func (c *Client) GetCard(ctx context.Context, id int64) (*Card, error) {
	var card Card
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/cards/%d", id),
		out:    &card,
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// PricePoint is one sample in a card's price history
type PricePoint struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Volume     int     `json:"volume"`
	Confidence float64 `json:"confidence"`
}

type PriceHistoryResponse struct {
	CardID  int64        `json:"card_id"`
	Horizon string       `json:"horizon"`
	Points  []PricePoint `json:"points"`
}

// GetPriceHistory fetches price history for a card over the given horizon
// (7d, 30d, 90d or 1y - validated by the handler before the call is made)
func (c *Client) GetPriceHistory(ctx context.Context, id int64, horizon string) (*PriceHistoryResponse, error) {
	q := url.Values{}
	setIfNotEmpty(q, "horizon", horizon)

	var resp PriceHistoryResponse
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/cards/%d/price-history", id),
		query:  q,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

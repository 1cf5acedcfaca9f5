package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Seller is a directory entry for a marketplace seller
type Seller struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"display_name"`
	Region       string  `json:"region"`
	Rating       float64 `json:"rating"`
	SalesCount   int     `json:"sales_count"`
	ListingCount int     `json:"listing_count"`
	JoinedAt     string  `json:"joined_at"`
}

type SellerParams struct {
	Page     int
	PageSize int
	Region   string
	// MinRating 0 means no rating filter
	MinRating float64
}

// SellersResponse - the directory endpoint names its envelope field "sellers"
// rather than "items"; the shape is otherwise the standard list envelope.
type SellersResponse struct {
	Sellers []Seller `json:"sellers"`
	Total   int      `json:"total"`
	HasMore bool     `json:"has_more"`
}

func (c *Client) GetSellers(ctx context.Context, params SellerParams) (*SellersResponse, error) {
	q := Page{Page: params.Page, PageSize: params.PageSize}.values()
	setIfNotEmpty(q, "region", params.Region)
	if params.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}

	var resp SellersResponse
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/directory/sellers",
		query:  q,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSeller(ctx context.Context, id string) (*Seller, error) {
	var seller Seller
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/directory/sellers/%s", id),
		out:    &seller,
	})
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

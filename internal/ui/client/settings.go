package client

import (
	"context"
	"net/http"
)

// Settings is the user's alerting/analysis configuration, round-tripped via
// GET/PUT. Threshold semantics are interpreted server-side.
type Settings struct {
	PriceAlertThresholdPct float64 `json:"price_alert_threshold_pct"`
	DefaultHorizon         string  `json:"default_horizon"` // 7d|30d|90d|1y
	MinConfidence          float64 `json:"min_confidence"`
	NotifyOnPriceAlerts    bool    `json:"notify_on_price_alerts"`
	NotifyOnTradeOffers    bool    `json:"notify_on_trade_offers"`
	NotifyOnQuoteReplies   bool    `json:"notify_on_quote_replies"`
}

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	err := c.do(ctx, apiRequest{
		method:       http.MethodGet,
		path:         "/settings",
		requiresAuth: true,
		out:          &settings,
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	var updated Settings
	err := c.do(ctx, apiRequest{
		method:       http.MethodPut,
		path:         "/settings",
		body:         settings,
		requiresAuth: true,
		out:          &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

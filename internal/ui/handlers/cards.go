package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

const defaultPriceHorizon = "30d"

// queryHorizon validates the price history horizon before the backend call
// is made; anything unrecognised falls back to the 30 day window.
func queryHorizon(r *http.Request) string {
	horizon := r.URL.Query().Get("horizon")
	if !dualcaster.ValidPriceHorizons[horizon] {
		return defaultPriceHorizon
	}
	return horizon
}

// HandleCardDetail renders a card page with its price history over the
// requested horizon
func (h *HandlerService) HandleCardDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	api := h.apiClient(r)

	card, err := api.GetCard(r.Context(), id)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		h.renderAPIError(w, r, err, "", "")
		return
	}

	horizon := queryHorizon(r)
	history, err := api.GetPriceHistory(r.Context(), id, horizon)
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderPage(w, r, "card_detail", h.pageData(r, map[string]any{
		"Card":    card,
		"Horizon": horizon,
		"History": history,
	}))
}

// HandlePriceHistory re-renders the price history table when the horizon
// selector changes
func (h *HandlerService) HandlePriceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid card.", false, "", "")
		return
	}

	history, err := h.apiClient(r).GetPriceHistory(r.Context(), id, queryHorizon(r))
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#price-history")
		return
	}

	h.renderFragment(w, r, "price_history.html", history)
}

// HandleMovers renders the dashboard's biggest 24h price movements
func (h *HandlerService) HandleMovers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.apiClient(r).SearchCards(r.Context(), client.CardSearchParams{
		PageSize: 5,
		Sort:     "change_desc",
	})
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/movers", "#movers")
		return
	}

	h.renderFragment(w, r, "movers.html", map[string]any{"Items": resp.Items})
}

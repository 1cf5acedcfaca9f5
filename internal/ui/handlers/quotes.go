package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func (h *HandlerService) HandleQuotesPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "quotes", h.pageData(r, nil))
}

func (h *HandlerService) HandleQuoteRows(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	resp, err := h.apiClient(r).GetQuoteRequests(r.Context(), client.QuoteParams{
		Page:   page,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#quote-rows")
		return
	}

	h.renderFragment(w, r, "quote_rows.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/quotes", r.URL.Query(), page),
	})
}

// HandleAcceptQuote accepts a quoted price and re-renders the table
func (h *HandlerService) HandleAcceptQuote(w http.ResponseWriter, r *http.Request) {
	h.quoteAction(w, r, func(api *client.Client, id int64) error {
		_, err := api.AcceptQuote(r.Context(), id)
		return err
	})
}

// HandleDeclineQuote declines a quoted price and re-renders the table
func (h *HandlerService) HandleDeclineQuote(w http.ResponseWriter, r *http.Request) {
	h.quoteAction(w, r, func(api *client.Client, id int64) error {
		_, err := api.DeclineQuote(r.Context(), id)
		return err
	})
}

func (h *HandlerService) quoteAction(w http.ResponseWriter, r *http.Request, action func(*client.Client, int64) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid quote.", false, "", "")
		return
	}

	api := h.apiClient(r)
	if err := action(api, id); err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	resp, err := api.GetQuoteRequests(r.Context(), client.QuoteParams{})
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/quotes", "#quote-rows")
		return
	}

	h.renderFragment(w, r, "quote_rows.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": "/ui-api/quotes?page=2",
	})
}

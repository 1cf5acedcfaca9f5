package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func (h *HandlerService) HandleDirectoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "directory", h.pageData(r, nil))
}

// HandleSellerList renders the seller directory with the region/rating
// filters applied
func (h *HandlerService) HandleSellerList(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	minRating := 0.0
	if raw := r.URL.Query().Get("min-rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err == nil && parsed > 0 {
			minRating = parsed
		}
	}

	resp, err := h.apiClient(r).GetSellers(r.Context(), client.SellerParams{
		Page:      page,
		Region:    r.URL.Query().Get("region"),
		MinRating: minRating,
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#seller-list")
		return
	}

	h.renderFragment(w, r, "seller_list.html", map[string]any{
		"Sellers": resp.Sellers,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/sellers", r.URL.Query(), page),
	})
}

// HandleQuoteForm renders the per-seller quote request form
func (h *HandlerService) HandleQuoteForm(w http.ResponseWriter, r *http.Request) {
	seller, err := h.apiClient(r).GetSeller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "quote_form.html", seller)
}

// HandleCreateQuoteRequest sends a quote request to a seller
func (h *HandlerService) HandleCreateQuoteRequest(w http.ResponseWriter, r *http.Request) {
	sellerID := r.FormValue("seller-id")
	if sellerID == "" {
		h.renderErrorAlert(w, r, "Invalid seller.", false, "", "")
		return
	}

	cardID, err := strconv.ParseInt(r.FormValue("card-id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Card ID must be a number.", false, "", "")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		h.renderErrorAlert(w, r, "Quantity must be at least 1.", false, "", "")
		return
	}

	_, err = h.apiClient(r).CreateQuoteRequest(r.Context(), client.CreateQuoteRequestRequest{
		SellerID: sellerID,
		Lines: []client.CreateQuoteRequestLine{{
			CardID:   cardID,
			Quantity: quantity,
			IsFoil:   r.FormValue("is-foil") == "true",
		}},
		Note: r.FormValue("note"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderSuccessAlert(w, r, "Quote request sent. Track it on the Quotes page.")
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func searchParamsFromQuery(r *http.Request) client.CardSearchParams {
	q := r.URL.Query()
	return client.CardSearchParams{
		Page:   queryPage(r),
		Name:   q.Get("name"),
		Set:    q.Get("set"),
		Rarity: q.Get("rarity"),
		IsFoil: queryFoil(r),
		Sort:   q.Get("sort"),
	}
}

// HandleSearchPage renders the card search page. When the URL already
// carries filters (a shared or pushed URL) the first page of results is
// fetched server-side so the link renders complete.
func (h *HandlerService) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	params := searchParamsFromQuery(r)
	data := map[string]any{"Params": params}

	hasFilters := params.Name != "" || params.Set != "" || params.Rarity != "" || params.Sort != "" || params.IsFoil != nil
	if hasFilters {
		resp, err := h.apiClient(r).SearchCards(r.Context(), params)
		if err != nil {
			// the page still renders; the user can re-run the search
			logger.ContextRequestLogger(r.Context()).Warn("Card search failed during page render",
				slog.String("error", err.Error()),
			)
		} else {
			data["Results"] = map[string]any{
				"Items":   resp.Items,
				"Total":   resp.Total,
				"HasMore": resp.HasMore,
				"NextURL": nextPageURL("/ui-api/search-cards", r.URL.Query(), params.Page),
			}
		}
	}

	h.renderPage(w, r, "search", h.pageData(r, data))
}

// HandleSearchCards renders the search results fragment
func (h *HandlerService) HandleSearchCards(w http.ResponseWriter, r *http.Request) {
	params := searchParamsFromQuery(r)

	resp, err := h.apiClient(r).SearchCards(r.Context(), params)
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#search-results")
		return
	}

	h.renderFragment(w, r, "search_results.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/search-cards", r.URL.Query(), params.Page),
	})
}

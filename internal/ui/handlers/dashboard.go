package handlers

import "net/http"

func (h *HandlerService) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "dashboard", h.pageData(r, nil))
}

// HandleStats renders the collection stats panel
func (h *HandlerService) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.apiClient(r).GetCollectionStats(r.Context())
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/stats", "#stats-panel")
		return
	}

	h.renderFragment(w, r, "stats_panel.html", map[string]any{"Stats": stats})
}

// HandleRefreshStats recomputes the collection stats server-side. This is a
// refresh-class call - it runs under the extended timeout and may still
// complete on the server if the client gives up.
func (h *HandlerService) HandleRefreshStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.apiClient(r).RefreshCollectionStats(r.Context())
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/stats", "#stats-panel")
		return
	}

	h.renderFragment(w, r, "stats_panel.html", map[string]any{"Stats": stats})
}

func (h *HandlerService) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	resp, err := h.apiClient(r).GetRecommendations(r.Context())
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/recommendations", "#recommendations")
		return
	}

	h.renderFragment(w, r, "recommendations.html", map[string]any{
		"Items":       resp.Items,
		"GeneratedAt": resp.GeneratedAt,
	})
}

// HandleRefreshRecommendations triggers recommendation regeneration
// (refresh-class, extended timeout)
func (h *HandlerService) HandleRefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	resp, err := h.apiClient(r).RefreshRecommendations(r.Context())
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/recommendations", "#recommendations")
		return
	}

	h.renderFragment(w, r, "recommendations.html", map[string]any{
		"Items":       resp.Items,
		"GeneratedAt": resp.GeneratedAt,
	})
}

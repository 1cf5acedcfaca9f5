package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func (h *HandlerService) HandleModerationPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "moderation", h.pageData(r, nil))
}

// HandleModerationQueue renders the moderation queue list with the status
// filter applied
func (h *HandlerService) HandleModerationQueue(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	resp, err := h.apiClient(r).GetModerationQueue(r.Context(), client.ModerationQueueParams{
		Page:   page,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#queue-list")
		return
	}

	h.renderFragment(w, r, "queue_list.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/moderation-queue", r.URL.Query(), page),
	})
}

// HandleResolveModerationItem submits a moderation decision and re-renders
// the queue
func (h *HandlerService) HandleResolveModerationItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid queue item.", false, "", "")
		return
	}

	resolution := r.FormValue("resolution")
	if !dualcaster.ValidModerationResolutions[resolution] {
		h.renderErrorAlert(w, r, "Choose a resolution.", false, "", "")
		return
	}

	api := h.apiClient(r)
	_, err = api.ResolveModerationItem(r.Context(), id, client.ResolveModerationItemRequest{
		Resolution: resolution,
		Note:       r.FormValue("note"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	resp, err := api.GetModerationQueue(r.Context(), client.ModerationQueueParams{})
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/moderation-queue", "#queue-list")
		return
	}

	h.renderFragment(w, r, "queue_list.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": "/ui-api/moderation-queue?page=2",
	})
}

func (h *HandlerService) HandleAppealsPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "appeals", h.pageData(r, nil))
}

func (h *HandlerService) HandleAppealList(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	resp, err := h.apiClient(r).GetAppeals(r.Context(), client.AppealParams{
		Page:   page,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#appeal-list")
		return
	}

	h.renderFragment(w, r, "appeal_list.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/appeals", r.URL.Query(), page),
	})
}

// HandleAppealDetail renders the expanded view of a single appeal
func (h *HandlerService) HandleAppealDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid appeal.", false, "", "")
		return
	}

	appeal, err := h.apiClient(r).GetAppeal(r.Context(), id)
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "appeal_detail.html", appeal)
}

// HandleResolveAppeal submits an appeal decision and re-renders the list
func (h *HandlerService) HandleResolveAppeal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid appeal.", false, "", "")
		return
	}

	resolution := r.FormValue("resolution")
	if !dualcaster.ValidModerationResolutions[resolution] {
		h.renderErrorAlert(w, r, "Choose a resolution.", false, "", "")
		return
	}

	api := h.apiClient(r)
	_, err = api.ResolveAppeal(r.Context(), id, client.ResolveAppealRequest{
		Resolution: resolution,
		Note:       r.FormValue("note"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	resp, err := api.GetAppeals(r.Context(), client.AppealParams{})
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/appeals", "#appeal-list")
		return
	}

	h.renderFragment(w, r, "appeal_list.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": "/ui-api/appeals?page=2",
	})
}

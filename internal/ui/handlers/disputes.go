package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func (h *HandlerService) HandleDisputesPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "disputes", h.pageData(r, nil))
}

func (h *HandlerService) HandleDisputeList(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	resp, err := h.apiClient(r).GetDisputes(r.Context(), client.DisputeParams{
		Page:   page,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#dispute-list")
		return
	}

	h.renderFragment(w, r, "dispute_list.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/disputes", r.URL.Query(), page),
	})
}

// HandleDisputeDetail renders the full dispute page including the evidence
// payload and the action controls
func (h *HandlerService) HandleDisputeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	dispute, err := h.apiClient(r).GetDispute(r.Context(), id)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderPage(w, r, "dispute_detail", h.pageData(r, map[string]any{
		"Dispute": dispute,
	}))
}

// disputeID parses the {id} route parameter for the dispute action handlers
func disputeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// HandleAssignDispute assigns the dispute to the calling moderator and
// re-renders the action controls
func (h *HandlerService) HandleAssignDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := disputeID(r)
	if !ok {
		h.renderErrorAlert(w, r, "Invalid dispute.", false, "", "")
		return
	}

	dispute, err := h.apiClient(r).AssignDispute(r.Context(), id)
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "dispute_actions.html", dispute)
}

// HandleRequestDisputeEvidence asks both parties for more evidence
func (h *HandlerService) HandleRequestDisputeEvidence(w http.ResponseWriter, r *http.Request) {
	id, ok := disputeID(r)
	if !ok {
		h.renderErrorAlert(w, r, "Invalid dispute.", false, "", "")
		return
	}

	message := r.FormValue("message")
	if message == "" {
		h.renderErrorAlert(w, r, "Describe the evidence you need.", false, "", "")
		return
	}

	dispute, err := h.apiClient(r).RequestDisputeEvidence(r.Context(), id, message)
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "dispute_actions.html", dispute)
}

// HandleResolveDispute records the final outcome. The backend rejects
// resolution of unassigned disputes; that error surfaces as an inline alert.
func (h *HandlerService) HandleResolveDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := disputeID(r)
	if !ok {
		h.renderErrorAlert(w, r, "Invalid dispute.", false, "", "")
		return
	}

	outcome := r.FormValue("outcome")
	if outcome == "" {
		h.renderErrorAlert(w, r, "Choose an outcome.", false, "", "")
		return
	}

	dispute, err := h.apiClient(r).ResolveDispute(r.Context(), id, client.ResolveDisputeRequest{
		Outcome: outcome,
		Note:    r.FormValue("note"),
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "dispute_actions.html", dispute)
}

package handlers

import (
	"net/http"
	"strconv"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

// HandleSettingsPage fetches the current settings and renders the form
func (h *HandlerService) HandleSettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := h.apiClient(r).GetSettings(r.Context())
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderPage(w, r, "settings", h.pageData(r, map[string]any{
		"Settings": settings,
	}))
}

// HandleUpdateSettings saves the settings form
func (h *HandlerService) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.ParseFloat(r.FormValue("price-alert-threshold-pct"), 64)
	if err != nil || threshold < 0 || threshold > 100 {
		h.renderErrorAlert(w, r, "Alert threshold must be between 0 and 100.", false, "", "")
		return
	}

	horizon := r.FormValue("default-horizon")
	if !dualcaster.ValidPriceHorizons[horizon] {
		h.renderErrorAlert(w, r, "Choose a valid price horizon.", false, "", "")
		return
	}

	confidence, err := strconv.ParseFloat(r.FormValue("min-confidence"), 64)
	if err != nil || confidence < 0 || confidence > 1 {
		h.renderErrorAlert(w, r, "Minimum confidence must be between 0 and 1.", false, "", "")
		return
	}

	_, err = h.apiClient(r).UpdateSettings(r.Context(), client.Settings{
		PriceAlertThresholdPct: threshold,
		DefaultHorizon:         horizon,
		MinConfidence:          confidence,
		NotifyOnPriceAlerts:    r.FormValue("notify-price-alerts") == "true",
		NotifyOnTradeOffers:    r.FormValue("notify-trade-offers") == "true",
		NotifyOnQuoteReplies:   r.FormValue("notify-quote-replies") == "true",
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderSuccessAlert(w, r, "Settings saved.")
}

// HandleChangePassword changes the account password. The new password is
// length-checked locally; everything else is the backend's call.
func (h *HandlerService) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	current := r.FormValue("current-password")
	newPassword := r.FormValue("new-password")

	if current == "" || newPassword == "" {
		h.renderErrorAlert(w, r, "Please fill in both password fields.", false, "", "")
		return
	}

	if len(newPassword) < dualcaster.MinimumPasswordLength {
		h.renderErrorAlert(w, r, "New password must be at least 12 characters.", false, "", "")
		return
	}

	err := h.apiClient(r).ChangePassword(r.Context(), client.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderSuccessAlert(w, r, "Password changed.")
}

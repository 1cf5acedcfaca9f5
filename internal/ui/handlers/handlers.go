// Package handlers contains the HTTP handlers for the Dualcaster Deals web
// UI: full pages rendered through the layout and HTMX fragments swapped into
// them.
//
// Every handler talks to the backend through a request-scoped API client
// bound to the token read from the session cookie, and funnels client
// failures through renderAPIError so auth problems, timeouts and backend
// errors are handled the same way everywhere.
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/auth"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/templates"
)

type HandlerService struct {
	AuthService *auth.AuthService
	ApiClient   *client.Client
	Templates   *templates.Templates
	Environment string
}

func NewHandlerService(authService *auth.AuthService, apiClient *client.Client, tmpl *templates.Templates, environment string) *HandlerService {
	return &HandlerService{
		AuthService: authService,
		ApiClient:   apiClient,
		Templates:   tmpl,
		Environment: environment,
	}
}

// apiClient returns the shared API client bound to a request-scoped token
// store. The token comes from the request context when RequireAuth ran, so a
// 401 eviction only affects this request's store, never another user's.
func (h *HandlerService) apiClient(r *http.Request) *client.Client {
	token := ""
	if details, ok := auth.ContextTokenDetails(r.Context()); ok {
		token = details.AccessToken
	}
	return h.ApiClient.WithTokens(session.NewMemoryStore(token))
}

// pageData assembles the template data for a full page render. "User" drives
// the nav in the layout; on public pages (no RequireAuth) it falls back to
// the session cookie so a logged-in user still sees their nav.
func (h *HandlerService) pageData(r *http.Request, extra map[string]any) map[string]any {
	data := map[string]any{}

	if details, ok := auth.ContextTokenDetails(r.Context()); ok {
		data["User"] = details
	} else if details, err := h.AuthService.SessionFromRequest(r); err == nil && details != nil {
		if h.AuthService.CheckTokenStatus(details) == auth.TokenValid {
			data["User"] = details
		}
	}

	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *HandlerService) renderPage(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := h.Templates.RenderPage(w, name, data); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("Failed to render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *HandlerService) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.Templates.RenderFragment(w, name, data); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("Failed to render fragment",
			slog.String("fragment", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// renderErrorAlert renders the inline error fragment with an optional retry
// button (retryURL must be a GET endpoint).
func (h *HandlerService) renderErrorAlert(w http.ResponseWriter, r *http.Request, message string, retryable bool, retryURL, retryTarget string) {
	h.renderFragment(w, r, "error_alert.html", map[string]any{
		"Message":     message,
		"Retryable":   retryable && retryURL != "",
		"RetryURL":    retryURL,
		"RetryTarget": retryTarget,
	})
}

func (h *HandlerService) renderSuccessAlert(w http.ResponseWriter, r *http.Request, message string) {
	h.renderFragment(w, r, "success_alert.html", map[string]any{"Message": message})
}

// renderAPIError is the uniform failure path for fragment handlers.
//
// A dead session (no stored token, or a 401 that already evicted it) clears
// the cookie and sends the browser to the login page; every other failure
// becomes an inline error alert, with a retry button when re-invoking the
// call can plausibly succeed.
func (h *HandlerService) renderAPIError(w http.ResponseWriter, r *http.Request, err error, retryURL, retryTarget string) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	apiErr, ok := err.(*client.APIError)
	if !ok {
		reqLogger.Error("Unexpected error from API client", slog.String("error", err.Error()))
		h.renderErrorAlert(w, r, "An error occurred. Please try again later.", false, "", "")
		return
	}

	switch apiErr.Kind {
	case client.KindAuth, client.KindUnauthorized:
		reqLogger.Debug("Session is no longer valid - redirecting to login",
			slog.String("kind", apiErr.Kind.String()),
		)
		h.AuthService.ClearSessionCookie(w)
		h.RedirectToLogin(w, r)
	default:
		reqLogger.Error("API call failed",
			slog.String("kind", apiErr.Kind.String()),
			slog.Int("status_code", apiErr.StatusCode),
			slog.String("error", apiErr.LogError()),
		)
		h.renderErrorAlert(w, r, apiErr.Message, apiErr.Retryable(), retryURL, retryTarget)
	}
}

// RedirectToLogin sends the browser to the login page. HTMX requests get an
// HX-Redirect header instead of a 303 so the whole page navigates, not just
// the swapped fragment.
func (h *HandlerService) RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// queryPage reads the page number from the query string (0 = client default)
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 0
	}
	return page
}

// queryFoil maps the tri-state foil filter: "" = both, "true"/"false" = only
func queryFoil(r *http.Request) *bool {
	switch r.URL.Query().Get("is-foil") {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// nextPageURL rebuilds the current fragment URL with page advanced by one,
// preserving the active filters so "Next page" keeps them applied.
func nextPageURL(path string, query url.Values, currentPage int) string {
	if currentPage < 1 {
		currentPage = 1
	}
	next := url.Values{}
	for k, v := range query {
		next[k] = v
	}
	next.Set("page", strconv.Itoa(currentPage+1))
	return path + "?" + next.Encode()
}

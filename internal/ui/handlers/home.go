package handlers

import (
	"log/slog"
	"net/http"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/auth"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
)

// HandleHome redirects the root path: dashboard when a live session exists,
// login otherwise.
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	details, err := h.AuthService.SessionFromRequest(r)
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("Failed to read session cookie", slog.String("error", err.Error()))
		h.AuthService.ClearSessionCookie(w)
		h.RedirectToLogin(w, r)
		return
	}

	switch h.AuthService.CheckTokenStatus(details) {
	case auth.TokenValid:
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		h.RedirectToLogin(w, r)
	}
}

func (h *HandlerService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "login", h.pageData(r, nil))
}

// HandleLoginPost authenticates against the backend and stores the returned
// token details in the session cookie
func (h *HandlerService) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderErrorAlert(w, r, "Please enter your email and password.", false, "", "")
		return
	}

	details, err := h.apiClient(r).Login(r.Context(), email, password)
	if err != nil {
		// a 401 here is wrong credentials, not a dead session - show the
		// message inline rather than bouncing through the login redirect
		reqLogger.Info("Login failed", slog.String("error", err.Error()))
		if apiErr, ok := err.(*client.APIError); ok {
			h.renderErrorAlert(w, r, apiErr.Message, apiErr.Retryable(), "", "")
		} else {
			h.renderErrorAlert(w, r, "An error occurred. Please try again.", false, "", "")
		}
		return
	}

	if err := h.AuthService.SetSessionCookie(w, details); err != nil {
		reqLogger.Error("Failed to set session cookie", slog.String("error", err.Error()))
		h.renderErrorAlert(w, r, "An error occurred. Please try again.", false, "", "")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.String("account_id", details.AccountID),
	)

	w.Header().Set("HX-Redirect", "/dashboard")
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerService) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "register", h.pageData(r, nil))
}

// HandleRegisterPost creates a new trader account
func (h *HandlerService) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	email := r.FormValue("email")
	displayName := r.FormValue("display-name")
	password := r.FormValue("password")

	if email == "" || displayName == "" || password == "" {
		h.renderErrorAlert(w, r, "Please fill in all fields.", false, "", "")
		return
	}

	if len(password) < dualcaster.MinimumPasswordLength {
		h.renderErrorAlert(w, r, "Password must be at least 12 characters.", false, "", "")
		return
	}

	err := h.apiClient(r).Register(r.Context(), client.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	})
	if err != nil {
		reqLogger.Info("Registration failed", slog.String("error", err.Error()))
		if apiErr, ok := err.(*client.APIError); ok {
			h.renderErrorAlert(w, r, apiErr.Message, false, "", "")
		} else {
			h.renderErrorAlert(w, r, "An error occurred. Please try again.", false, "", "")
		}
		return
	}

	h.renderSuccessAlert(w, r, "Account created. You can now log in.")
}

// HandleLogout invalidates the backend session and clears the cookie. The
// cookie goes regardless of whether the backend call succeeded.
func (h *HandlerService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	details, err := h.AuthService.SessionFromRequest(r)
	if err == nil && details != nil && details.AccessToken != "" {
		api := h.ApiClient.WithTokens(session.NewMemoryStore(details.AccessToken))
		if err := api.Logout(r.Context()); err != nil {
			logger.ContextRequestLogger(r.Context()).Warn("Backend logout failed",
				slog.String("error", err.Error()),
			)
		}
	}

	h.AuthService.ClearSessionCookie(w)
	h.RedirectToLogin(w, r)
}

func (h *HandlerService) HandleAccessDenied(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "access_denied", h.pageData(r, nil))
}

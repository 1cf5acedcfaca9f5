package auth

import (
	"log/slog"
	"net/http"

	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
)

// RequireAuth ensures the request carries a live session.
//
// A valid token is placed in the request context for the handlers; anything
// else clears the session cookie and redirects to the login page. There is no
// client-side refresh flow - an expired token means a new login.
func (a *AuthService) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.ContextRequestLogger(r.Context())

		details, err := a.SessionFromRequest(r)
		if err != nil {
			reqLogger.Error("Failed to read session cookie",
				slog.String("component", "ui.RequireAuth"),
				slog.String("error", err.Error()),
			)
			a.ClearSessionCookie(w)
			redirectToLogin(w, r)
			return
		}

		status := a.CheckTokenStatus(details)

		switch status {
		case TokenValid:
			reqLogger.Debug("Authentication check successful",
				slog.String("component", "ui.RequireAuth"),
			)
			ctx := ContextWithTokenDetails(r.Context(), details)
			next.ServeHTTP(w, r.WithContext(ctx))
		case TokenMissing, TokenInvalid, TokenExpired:
			reqLogger.Debug("Authentication failed - redirecting to login",
				slog.String("component", "ui.RequireAuth"),
				slog.String("status", status.String()),
			)
			a.ClearSessionCookie(w)
			redirectToLogin(w, r)
		}
	})
}

// RequireModerator gates the moderation and dispute pages. Admins pass too -
// the backend treats admin as a superset of moderator.
func (a *AuthService) RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.ContextRequestLogger(r.Context())

		details, ok := ContextTokenDetails(r.Context())
		if !ok {
			reqLogger.Error("Token details not found in context - RequireModerator must run after RequireAuth",
				slog.String("component", "ui.RequireModerator"),
			)
			redirectToAccessDenied(w, r)
			return
		}

		if details.Role != "moderator" && details.Role != "admin" {
			reqLogger.Debug("Access denied - account attempted to access moderation feature",
				slog.String("component", "ui.RequireModerator"),
				slog.String("account_id", details.AccountID),
				slog.String("role", details.Role),
			)
			redirectToAccessDenied(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Helper for redirecting to login - HTMX requests get an HX-Redirect header
// instead of a 303
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func redirectToAccessDenied(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/access-denied")
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, "/access-denied", http.StatusSeeOther)
	}
}

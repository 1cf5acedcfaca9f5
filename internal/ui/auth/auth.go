package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

// AuthService manages the browser session for the UI.
//
// The browser keeps authentication state in a single HttpOnly cookie holding
// the token details returned by the login endpoint, so any instance of the UI
// can authenticate the user regardless of which one handles each request.
type AuthService struct {
	environment string
}

func NewAuthService(environment string) *AuthService {
	return &AuthService{environment: environment}
}

// TokenStatus represents the status of the access token carried by a UI request
type TokenStatus int

const (
	TokenMissing TokenStatus = iota
	TokenInvalid
	TokenExpired
	TokenValid
)

var tokenStatusNames = []string{"TokenMissing", "TokenInvalid", "TokenExpired", "TokenValid"}

func (t TokenStatus) String() string {
	if t < 0 || int(t) >= len(tokenStatusNames) {
		return fmt.Sprintf("TokenStatus(%d)", int(t))
	}
	return tokenStatusNames[t]
}

// CheckTokenStatus classifies the token details without verifying the
// signature - verification is the backend's job, the UI only needs to know
// whether a login redirect is required.
func (a *AuthService) CheckTokenStatus(details *client.TokenDetails) TokenStatus {
	if details == nil {
		return TokenMissing
	}

	if details.AccessToken == "" {
		return TokenInvalid
	}

	// Parse token without validation to check expiry
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &jwt.RegisteredClaims{}

	_, _, err := parser.ParseUnverified(details.AccessToken, claims)
	if err != nil {
		return TokenInvalid
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return TokenExpired
	}

	return TokenValid
}

// SessionFromRequest reads the token details from the session cookie.
// Returns nil when no session cookie is present.
func (a *AuthService) SessionFromRequest(r *http.Request) (*client.TokenDetails, error) {
	cookie, err := r.Cookie(dualcaster.SessionCookieName)
	if err != nil {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session cookie: %w", err)
	}

	var details client.TokenDetails
	if err := json.Unmarshal(decoded, &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session cookie: %w", err)
	}

	return &details, nil
}

// SetSessionCookie stores the token details in the session cookie after login
func (a *AuthService) SetSessionCookie(w http.ResponseWriter, details *client.TokenDetails) error {
	isProd := a.environment == "prod"

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal token details: %w", err)
	}

	// Base64 encode to avoid cookie encoding issues
	encoded := base64.StdEncoding.EncodeToString(detailsJSON)

	http.SetCookie(w, &http.Cookie{
		Name:     dualcaster.SessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   details.ExpiresIn,
	})

	return nil
}

// ClearSessionCookie removes the session cookie (logout or dead session)
func (a *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	isProd := a.environment == "prod"

	http.SetCookie(w, &http.Cookie{
		Name:     dualcaster.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
	})
}

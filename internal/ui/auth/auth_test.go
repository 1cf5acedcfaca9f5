package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "account-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestCheckTokenStatus(t *testing.T) {
	service := NewAuthService("test")

	tests := []struct {
		name    string
		details *client.TokenDetails
		want    TokenStatus
	}{
		{
			name:    "nil details",
			details: nil,
			want:    TokenMissing,
		},
		{
			name:    "empty access token",
			details: &client.TokenDetails{},
			want:    TokenInvalid,
		},
		{
			name:    "garbage token",
			details: &client.TokenDetails{AccessToken: "not-a-jwt"},
			want:    TokenInvalid,
		},
		{
			name:    "expired token",
			details: &client.TokenDetails{AccessToken: signedToken(t, time.Now().Add(-time.Hour))},
			want:    TokenExpired,
		},
		{
			name:    "live token",
			details: &client.TokenDetails{AccessToken: signedToken(t, time.Now().Add(time.Hour))},
			want:    TokenValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.CheckTokenStatus(tt.details); got != tt.want {
				t.Errorf("CheckTokenStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	service := NewAuthService("test")

	details := &client.TokenDetails{
		AccessToken: signedToken(t, time.Now().Add(time.Hour)),
		TokenType:   "bearer",
		ExpiresIn:   1800,
		AccountID:   "account-1",
		Email:       "trader@example.com",
		Role:        "trader",
	}

	rec := httptest.NewRecorder()
	if err := service.SetSessionCookie(rec, details); err != nil {
		t.Fatalf("SetSessionCookie() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])

	got, err := service.SessionFromRequest(req)
	if err != nil {
		t.Fatalf("SessionFromRequest() error = %v", err)
	}
	if got == nil {
		t.Fatal("SessionFromRequest() returned nil details")
	}
	if got.AccountID != details.AccountID || got.Role != details.Role || got.AccessToken != details.AccessToken {
		t.Errorf("round-tripped details = %+v, want %+v", got, details)
	}
}

func TestSessionFromRequestNoCookie(t *testing.T) {
	service := NewAuthService("test")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	details, err := service.SessionFromRequest(req)
	if err != nil {
		t.Fatalf("SessionFromRequest() error = %v", err)
	}
	if details != nil {
		t.Errorf("details = %+v, want nil when no cookie present", details)
	}
}

func TestSecureFlagFollowsEnvironment(t *testing.T) {
	for _, tt := range []struct {
		environment string
		wantSecure  bool
	}{
		{"prod", true},
		{"dev", false},
	} {
		service := NewAuthService(tt.environment)
		rec := httptest.NewRecorder()
		if err := service.SetSessionCookie(rec, &client.TokenDetails{ExpiresIn: 60}); err != nil {
			t.Fatalf("SetSessionCookie() error = %v", err)
		}
		if got := rec.Result().Cookies()[0].Secure; got != tt.wantSecure {
			t.Errorf("environment %s: Secure = %v, want %v", tt.environment, got, tt.wantSecure)
		}
	}
}

package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/auth"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/templates"
)

// newTestRouter wires a HandlerService against the given backend with the
// same middleware the real server uses for the fragment endpoints.
func newTestRouter(t *testing.T, backendURL string) *chi.Mux {
	t.Helper()

	tmpl, err := templates.Load()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	authService := auth.NewAuthService("test")
	hs := NewHandlerService(authService, client.New(backendURL, session.NewMemoryStore("")), tmpl, "test")

	router := chi.NewRouter()
	router.Use(logger.RequestLogging(logger.InitLogger(logger.ParseLogLevel("error"), "test")))

	router.Group(func(r chi.Router) {
		r.Use(authService.RequireAuth)

		r.Get("/ui-api/stats", hs.HandleStats)
		r.Get("/ui-api/inventory", hs.HandleInventoryRows)
		r.Post("/ui-api/inventory-import", hs.HandleImportInventory)
	})

	return router
}

func testSessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "acct-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	detailsJSON, err := json.Marshal(client.TokenDetails{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		AccountID:   "acct-1",
		Role:        "trader",
	})
	if err != nil {
		t.Fatalf("failed to marshal token details: %v", err)
	}

	return &http.Cookie{
		Name:  dualcaster.SessionCookieName,
		Value: base64.StdEncoding.EncodeToString(detailsJSON),
	}
}

func TestStatsFragmentRendersBackendData(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory/stats" {
			t.Errorf("unexpected backend path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"total_cards": 420,
			"unique_cards": 97,
			"total_value": 1234.5,
			"total_cost": 1000,
			"gain_loss": 234.5,
			"gain_loss_pct": 23.45,
			"last_computed_at": "2026-08-20T10:00:00Z"
		}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	req := httptest.NewRequest("GET", "/ui-api/stats", nil)
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}

	body := rr.Body.String()
	for _, want := range []string{"420", "$1,234.50", "2026-08-20 10:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("response body missing %q", want)
		}
	}
}

func TestDeadSessionRedirectsToLogin(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "token revoked"}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	req := httptest.NewRequest("GET", "/ui-api/stats", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("HX-Redirect = %q, want /login", got)
	}

	// the dead session cookie must be cleared
	cleared := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == dualcaster.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

func TestBackendErrorRendersRetryAlert(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail": "stats recompute is already running"}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	req := httptest.NewRequest("GET", "/ui-api/stats", nil)
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, "alert-error") {
		t.Errorf("expected an error alert, got: %s", body)
	}
	if !strings.Contains(body, "stats recompute is already running") {
		t.Errorf("alert does not carry the backend detail message")
	}
	// 5xx failures are retryable
	if !strings.Contains(body, "Retry") {
		t.Errorf("expected a retry button for a 5xx failure")
	}
}

func TestInventoryRowsCarryNextPageURL(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "bolt" {
			t.Errorf("search param = %q, want bolt", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"items": [{"id": 1, "card_name": "Lightning Bolt", "set_code": "LEA",
				"condition": "near_mint", "quantity": 4, "purchase_price": 100,
				"market_price": 150, "gain_loss": 200}],
			"total": 45,
			"has_more": true
		}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	req := httptest.NewRequest("GET", "/ui-api/inventory?search=bolt", nil)
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, "Lightning Bolt") {
		t.Fatalf("response body missing the inventory row: %s", body)
	}
	if !strings.Contains(body, "page=2") || !strings.Contains(body, "search=bolt") {
		t.Errorf("next page URL should advance the page and keep the search filter, got: %s", body)
	}
}

func TestImportRejectsInvalidFileWithoutBackendCall(t *testing.T) {
	var backendCalls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls.Add(1)
		io.WriteString(w, `{"imported": 0, "skipped": 0}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("import-file", "cards.json")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	io.WriteString(part, `{"items": []}`) // schema requires at least one item
	mw.Close()

	req := httptest.NewRequest("POST", "/ui-api/inventory-import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if !strings.Contains(rr.Body.String(), "not valid") {
		t.Errorf("expected a validation error, got: %s", rr.Body.String())
	}
	if backendCalls.Load() != 0 {
		t.Errorf("invalid file reached the backend (%d calls)", backendCalls.Load())
	}
}

func TestImportResultRendered(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"imported": 12, "skipped": 2, "errors": ["row 7: unknown card"]}`)
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("import-file", "cards.json")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	io.WriteString(part, `{"items": [{"card_name": "Lightning Bolt", "set_code": "LEA", "quantity": 4, "condition": "near_mint"}]}`)
	mw.Close()

	req := httptest.NewRequest("POST", "/ui-api/inventory-import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(testSessionCookie(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	body := rr.Body.String()
	for _, want := range []string{"Imported 12", "skipped 2", "row 7: unknown card"} {
		if !strings.Contains(body, want) {
			t.Errorf("response body missing %q: %s", want, body)
		}
	}
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
)

// newTestClient binds a client to the given test server with an optional
// pre-seeded token
func newTestClient(ts *httptest.Server, token string) (*Client, *session.MemoryStore) {
	store := session.NewMemoryStore(token)
	return New(ts.URL, store), store
}

func TestGetInventoryOmitsUnsetParams(t *testing.T) {
	tests := []struct {
		name      string
		params    InventoryParams
		wantQuery url.Values
	}{
		{
			name:   "defaults only",
			params: InventoryParams{},
			wantQuery: url.Values{
				"page":      {"1"},
				"page_size": {"20"},
			},
		},
		{
			name:   "explicit page keeps default size",
			params: InventoryParams{Page: 3},
			wantQuery: url.Values{
				"page":      {"3"},
				"page_size": {"20"},
			},
		},
		{
			name:   "search filter included when set",
			params: InventoryParams{Search: "dragon", IsFoil: boolPtr(true)},
			wantQuery: url.Values{
				"page":      {"1"},
				"page_size": {"20"},
				"search":    {"dragon"},
				"is_foil":   {"true"},
			},
		},
		{
			name:   "foil filter false is still sent",
			params: InventoryParams{IsFoil: boolPtr(false)},
			wantQuery: url.Values{
				"page":      {"1"},
				"page_size": {"20"},
				"is_foil":   {"false"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"items":[],"total":0,"has_more":false}`))
			}))
			defer ts.Close()

			c, _ := newTestClient(ts, "token")
			if _, err := c.GetInventory(context.Background(), tt.params); err != nil {
				t.Fatalf("GetInventory() error = %v", err)
			}

			if len(gotQuery) != len(tt.wantQuery) {
				t.Errorf("query has %d keys (%v), want %d (%v)", len(gotQuery), gotQuery, len(tt.wantQuery), tt.wantQuery)
			}
			for key, want := range tt.wantQuery {
				if got := gotQuery.Get(key); got != want[0] {
					t.Errorf("query[%s] = %q, want %q", key, got, want[0])
				}
			}
		})
	}
}

func TestAuthRequiredShortCircuitsWithoutNetworkCall(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "") // no stored token
	_, err := c.GetInventory(context.Background(), InventoryParams{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetInventory() error = %v, want *APIError", err)
	}
	if apiErr.Kind != KindAuth {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindAuth)
	}
	if calls != 0 {
		t.Errorf("network layer was invoked %d times, want 0", calls)
	}
}

func TestUnauthorizedResponseClearsStoredToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"session expired"}`))
	}))
	defer ts.Close()

	c, store := newTestClient(ts, "stale-token")
	_, err := c.GetCollectionStats(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetCollectionStats() error = %v, want *APIError", err)
	}
	if apiErr.Kind != KindUnauthorized {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindUnauthorized)
	}
	if got := store.Get(); got != "" {
		t.Errorf("stored token = %q after 401, want cleared", got)
	}
}

func TestTimeoutSelection(t *testing.T) {
	c := New("http://localhost", session.NewMemoryStore(""))

	tests := []struct {
		path string
		want time.Duration
	}{
		{"/inventory", 30 * time.Second},
		{"/cards", 30 * time.Second},
		{"/inventory/stats/refresh", 300 * time.Second},
		{"/recommendations/refresh", 300 * time.Second},
	}

	for _, tt := range tests {
		if got := c.timeoutFor(tt.path); got != tt.want {
			t.Errorf("timeoutFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestListFetchDecodesEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory" {
			t.Errorf("path = %q, want /inventory", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id":1,"card_id":10,"card_name":"Emberwing Drake","quantity":2},
				{"id":2,"card_id":11,"card_name":"Tidecaller Adept","quantity":1},
				{"id":3,"card_id":12,"card_name":"Gravemold Shambler","quantity":4}
			],
			"total": 3,
			"has_more": false
		}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token-1")
	resp, err := c.GetInventory(context.Background(), InventoryParams{})
	if err != nil {
		t.Fatalf("GetInventory() error = %v", err)
	}

	if len(resp.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(resp.Items))
	}
	if resp.Total != 3 || resp.HasMore {
		t.Errorf("envelope = total %d has_more %v, want 3/false", resp.Total, resp.HasMore)
	}
	if resp.Items[0].CardName != "Emberwing Drake" {
		t.Errorf("Items[0].CardName = %q", resp.Items[0].CardName)
	}
}

func TestErrorMessageExtractedFromDetailField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Card not found"}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "")
	_, err := c.GetCard(context.Background(), 999)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetCard() error = %v, want *APIError", err)
	}
	if apiErr.Kind != KindHTTP {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindHTTP)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Error() != "Card not found" {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), "Card not found")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"message field", `{"message":"rate limit exceeded"}`, "rate limit exceeded"},
		{"plain text body", `upstream exploded`, "upstream exploded"},
		{"empty body", ``, "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c, _ := newTestClient(ts, "")
			_, err := c.GetCard(context.Background(), 1)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestTimeoutRejectsInsteadOfHanging(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release // hold the request open past the client deadline
	}))
	defer ts.Close()
	defer close(release)

	c, _ := newTestClient(ts, "token")
	c.defaultTimeout = 50 * time.Millisecond
	c.refreshTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := c.RefreshCollectionStats(context.Background())
	elapsed := time.Since(start)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("RefreshCollectionStats() error = %v, want *APIError", err)
	}
	if apiErr.Kind != KindTimeout {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindTimeout)
	}
	if apiErr.StatusCode != http.StatusRequestTimeout {
		t.Errorf("StatusCode = %d, want 408", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "still be running") {
		t.Errorf("Message = %q, want note that the operation may still be running", apiErr.Message)
	}
	if elapsed > 5*time.Second {
		t.Errorf("call took %v, should have aborted at the deadline", elapsed)
	}
}

func TestEmptySuccessBodyDecodesToZeroValue(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 200 with empty body
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	settings, err := c.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if *settings != (Settings{}) {
		t.Errorf("settings = %+v, want zero value", *settings)
	}
}

func TestConnectionFailureNamesURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // server is gone before the call

	c, _ := newTestClient(ts, "")
	_, err := c.GetSellers(context.Background(), SellerParams{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetSellers() error = %v, want *APIError", err)
	}
	if apiErr.Kind != KindNetwork {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindNetwork)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for network errors", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, ts.URL) {
		t.Errorf("Message = %q, want it to name the unreachable URL", apiErr.Message)
	}
}

func TestMutatingCallsCarryRequestID(t *testing.T) {
	var gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	if _, err := c.RefreshRecommendations(context.Background()); err != nil {
		t.Fatalf("RefreshRecommendations() error = %v", err)
	}
	if gotID == "" {
		t.Error("X-Request-ID header not set on mutating request")
	}
}

func boolPtr(b bool) *bool { return &b }

// Package client is the typed HTTP client for the Dualcaster Deals API.
//
// Every outbound call goes through Client.do, which attaches the bearer
// token, applies the request deadline (30s, or 300s for refresh-class
// endpoints), and normalizes all failures into *APIError so the handlers can
// treat every error uniformly (see errors.go). The per-resource files in this
// package are stateless request builders: they map typed option structs onto
// query strings and JSON bodies and hold no business logic.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
)

// Client handles communication with the Dualcaster Deals API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.Store

	// deadlines are variables so tests can shorten them
	defaultTimeout time.Duration
	refreshTimeout time.Duration
}

func New(baseURL string, tokens session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// per-request deadlines are set via context in do(); the http.Client
		// itself carries no timeout so refresh-class calls are not cut short
		httpClient:     &http.Client{},
		tokens:         tokens,
		defaultTimeout: dualcaster.DefaultAPITimeout,
		refreshTimeout: dualcaster.RefreshAPITimeout,
	}
}

// WithTokens returns a shallow copy of the client bound to a different token
// store. The web layer uses this to bind a request-scoped store holding the
// token read from the session cookie.
func (c *Client) WithTokens(tokens session.Store) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

// apiRequest describes one backend call for do()
type apiRequest struct {
	method       string
	path         string // relative, e.g. "/inventory"
	query        url.Values
	body         any  // marshaled to JSON when non-nil
	requiresAuth bool
	out          any // decoded from the response body when non-nil
}

// timeoutFor selects the request deadline: refresh-class endpoints (path
// contains "/refresh") get the extended timeout.
func (c *Client) timeoutFor(path string) time.Duration {
	if strings.Contains(path, "/refresh") {
		return c.refreshTimeout
	}
	return c.defaultTimeout
}

// do issues one request against the Dualcaster API.
//
// Behavior contract:
//   - requiresAuth with no stored token fails immediately (no network call)
//   - a 401 response clears the stored token before the error is returned
//   - all failures come back as *APIError
//   - an empty 2xx body decodes to the zero value of out, never a parse error
func (c *Client) do(ctx context.Context, req apiRequest) error {
	var token string
	if req.requiresAuth {
		token = c.tokens.Get()
		if token == "" {
			return newAuthRequiredError()
		}
	}

	fullURL := c.baseURL + req.path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			return newInternalError(err, fmt.Sprintf("marshaling %s %s request", req.method, req.path))
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(req.path))
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, bodyReader)
	if err != nil {
		return newInternalError(err, fmt.Sprintf("creating %s %s request", req.method, req.path))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	if req.method != http.MethodGet {
		// client-generated correlation id for mutating calls
		httpReq.Header.Set("X-Request-ID", uuid.NewString())
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return newTimeoutError(req.path, strings.Contains(req.path, "/refresh"))
		}
		return newNetworkError(fullURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		// the session is dead - evict the token so subsequent calls
		// short-circuit and the user is prompted to log in again
		c.tokens.Clear()
		return newHTTPError(res)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newHTTPError(res)
	}

	if req.out == nil {
		io.Copy(io.Discard, res.Body) //nolint:errcheck // drain for connection reuse
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return newInternalError(err, fmt.Sprintf("reading %s %s response", req.method, req.path))
	}

	// some endpoints answer 2xx with an empty body - treat it as the zero
	// value rather than a decode error
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, req.out); err != nil {
		return newInternalError(err, fmt.Sprintf("decoding %s %s response", req.method, req.path))
	}

	return nil
}

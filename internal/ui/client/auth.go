package client

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenDetails represents the response from the login endpoint. The access
// token is persisted by the caller (cookie in the web layer, memory store in
// tests) - the client itself only reads it back through the session store.
type TokenDetails struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	AccountID   string `json:"account_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"` // "trader", "moderator" or "admin"
}

// Login authenticates a user against the Dualcaster API
func (c *Client) Login(ctx context.Context, email, password string) (*TokenDetails, error) {
	var details TokenDetails
	err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   LoginRequest{Email: email, Password: password},
		out:    &details,
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register creates a new trader account
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	})
}

// Logout invalidates the current session server-side. The caller clears the
// local session regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/auth/logout",
		requiresAuth: true,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/auth/change-password",
		body:         req,
		requiresAuth: true,
	})
}

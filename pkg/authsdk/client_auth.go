package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Login forwards a credentials body to POST /auth/login.
func (c *Client) Login(ctx context.Context, body []byte) (*LoginResponse, error) {
	return c.login(ctx, "login", "/auth/login", body)
}

// LoginEmail forwards a credentials body to POST /auth/login-email, the
// storefront customer login.
func (c *Client) LoginEmail(ctx context.Context, body []byte) (*LoginResponse, error) {
	return c.login(ctx, "login-email", "/auth/login-email", body)
}

func (c *Client) login(ctx context.Context, op, path string, body []byte) (*LoginResponse, error) {
	if body == nil {
		body = []byte("{}")
	}

	data, err := c.call(ctx, op, http.MethodPost, path, body, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token at POST /auth/refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("refresh: encode body: %w", err)
	}

	data, err := c.call(ctx, "refresh", http.MethodPost, "/auth/refresh", body, "")
	if err != nil {
		return nil, err
	}

	var out TokenPair
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// IsJSON reports whether a Content-Type header names application/json.
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// call performs one request and classifies the outcome. On success the raw
// JSON body is returned.
func (c *Client) call(
	ctx context.Context,
	op, method, path string,
	body []byte,
	bearer string,
) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	if c.SecretKey != "" {
		req.Header.Set(SecretHeader, c.SecretKey)
	}
	req.Header.Set("Cache-Control", "no-store")
	if reqID := slogx.RequestID(ctx); reqID != "" {
		req.Header.Set(slogx.RequestIDHeader, reqID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RejectedError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	ct := resp.Header.Get("Content-Type")
	if !IsJSON(ct) {
		return nil, &ContractError{StatusCode: resp.StatusCode, ContentType: ct, Body: string(data)}
	}

	return data, nil
}

// decode unmarshals a successful body, reporting failures as ContractError.
func decode(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return &ContractError{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        string(data),
			Err:         err,
		}
	}
	return nil
}

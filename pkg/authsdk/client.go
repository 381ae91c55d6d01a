package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SecretHeader is the header carrying the shared secret.
const SecretHeader = "X-Secret-Key"

// Client talks to the backend identity endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// SecretKey is sent as X-Secret-Key when non-empty.
	SecretKey string
}

// NewClient creates a client for baseURL. A nil httpClient gets a private
// client with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client, secretKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: httpClient,
		SecretKey:  secretKey,
	}
}

// Configured reports whether a backend base URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != ""
}

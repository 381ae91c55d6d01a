package upstream

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// SecretHeader authenticates the gateway itself to the backend.
const SecretHeader = "X-Secret-Key"

// HeaderConfig controls which headers BuildHeaders derives.
type HeaderConfig struct {
	// SecretKey is sent as X-Secret-Key when non-empty.
	SecretKey string

	// ForwardCookie copies the inbound Cookie header verbatim.
	ForwardCookie bool

	// DefaultContentType is used when the inbound request has none. Empty
	// means no Content-Type is sent in that case.
	DefaultContentType string
}

// BuildHeaders derives the header set for a backend call from the inbound
// request. It does not touch the network and returns a fresh map each call.
func BuildHeaders(cfg HeaderConfig, r *http.Request) http.Header {
	h := make(http.Header)

	if ct := r.Header.Get("Content-Type"); ct != "" {
		h.Set("Content-Type", ct)
	} else if cfg.DefaultContentType != "" {
		h.Set("Content-Type", cfg.DefaultContentType)
	}

	if token, ok := sessionx.TokenFromRequest(r); ok {
		h.Set("Authorization", sessionx.NormalizeBearer(token))
	}

	if cfg.SecretKey != "" {
		h.Set(SecretHeader, cfg.SecretKey)
	}

	if cfg.ForwardCookie {
		if cookie := r.Header.Get("Cookie"); cookie != "" {
			h.Set("Cookie", cookie)
		}
	}

	if reqID := slogx.RequestID(r.Context()); reqID != "" {
		h.Set(slogx.RequestIDHeader, reqID)
	}

	h.Set("Cache-Control", "no-store")
	return h
}

// Join appends path to base with exactly one slash between them.
func Join(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

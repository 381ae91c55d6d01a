package http

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// PagesHandler reverse proxies every page the gate let through to the UI
// origin. Without an origin every page is 404.
type PagesHandler struct {
	proxy *httputil.ReverseProxy
}

// NewPagesHandler proxies to frontendURL over transport. An empty
// frontendURL yields a handler that answers 404.
func NewPagesHandler(frontendURL string, transport http.RoundTripper) (*PagesHandler, error) {
	if frontendURL == "" {
		return &PagesHandler{}, nil
	}

	target, err := url.Parse(frontendURL)
	if err != nil {
		return nil, fmt.Errorf("parse frontend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("frontend url %q must be absolute", frontendURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slogx.FromContext(r.Context()).Error("frontend unreachable", "err", err)
			httpx.WriteText(w, http.StatusBadGateway, "Error conectando al frontend")
		},
	}

	return &PagesHandler{proxy: proxy}, nil
}

func (h *PagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.proxy == nil {
		http.NotFound(w, r)
		return
	}
	h.proxy.ServeHTTP(w, r)
}

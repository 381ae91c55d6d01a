// Package upstream owns the connections to the backend and the pure helpers
// that shape a forwarded request and its relayed response.
package upstream

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// PoolConfig tunes the keep-alive transports.
type PoolConfig struct {
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration
}

// DefaultPoolConfig returns the settings used when nothing is configured.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     90 * time.Second,
		DialTimeout:         5 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
}

// Pool keeps one keep-alive transport per scheme for the life of the process.
// It implements http.RoundTripper and routes each request by its URL scheme.
type Pool struct {
	plain  *http.Transport
	secure *http.Transport
}

var _ http.RoundTripper = (*Pool)(nil)

// NewPool builds both transports. Call CloseIdleConnections on shutdown.
func NewPool(cfg PoolConfig) *Pool {
	defaults := DefaultPoolConfig()
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = defaults.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = defaults.IdleConnTimeout
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.TLSHandshakeTimeout <= 0 {
		cfg.TLSHandshakeTimeout = defaults.TLSHandshakeTimeout
	}

	return &Pool{
		plain:  newTransport(cfg, false),
		secure: newTransport(cfg, true),
	}
}

func newTransport(cfg PoolConfig, secure bool) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        cfg.MaxIdleConnsPerHost * 4,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}
	if secure {
		t.TLSHandshakeTimeout = cfg.TLSHandshakeTimeout
		t.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		t.ForceAttemptHTTP2 = true
	}
	return t
}

// RoundTrip sends req over the transport matching its scheme.
func (p *Pool) RoundTrip(req *http.Request) (*http.Response, error) {
	return p.For(req.URL.Scheme).RoundTrip(req)
}

// For returns the transport used for scheme.
func (p *Pool) For(scheme string) *http.Transport {
	if scheme == "https" {
		return p.secure
	}
	return p.plain
}

// Client returns an http.Client backed by the pool. timeout bounds a whole
// exchange including reading the body; zero means no limit.
func (p *Pool) Client(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: p,
		Timeout:   timeout,
		// Redirects from the backend are relayed, not followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// CloseIdleConnections drops idle connections on both transports.
func (p *Pool) CloseIdleConnections() {
	p.plain.CloseIdleConnections()
	p.secure.CloseIdleConnections()
}

package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/mudras/internal/gateway/http"
	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
)

const testSecret = "s3cr3t"

// captured is what the fake backend saw for one request.
type captured struct {
	Method  string
	Path    string
	RawPath string
	Query   string
	Header  http.Header
	Body    string
}

// backend is an httptest server that records every request it serves.
type backend struct {
	*httptest.Server
	mux *http.ServeMux

	mu   sync.Mutex
	seen []captured
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.seen = append(b.seen, captured{
			Method:  r.Method,
			Path:    r.URL.Path,
			RawPath: r.URL.EscapedPath(),
			Query:   r.URL.RawQuery,
			Header:  r.Header.Clone(),
			Body:    string(body),
		})
		b.mu.Unlock()

		r.Body = io.NopCloser(strings.NewReader(string(body)))
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) handle(pattern string, h http.HandlerFunc) { b.mux.HandleFunc(pattern, h) }

func (b *backend) requests() []captured {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]captured(nil), b.seen...)
}

func (b *backend) last() captured {
	reqs := b.requests()
	if len(reqs) == 0 {
		return captured{}
	}
	return reqs[len(reqs)-1]
}

// writeJSON answers like the real backend does.
func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// newGateway builds a fully routed gateway in front of baseURL.
func newGateway(t *testing.T, baseURL string, mutate ...func(*httpapi.Config)) *httpapi.Router {
	t.Helper()

	cfg := httpapi.Config{
		BackendURL:      baseURL,
		GraphQLURL:      strings.TrimSuffix(baseURL, "/") + "/graphql",
		SecretKey:       testSecret,
		Env:             "test",
		BuildVersion:    "test",
		DebugRoutes:     true,
		UpstreamTimeout: 5 * time.Second,
		PermisosTTL:     time.Minute,
	}
	if baseURL == "" {
		cfg.GraphQLURL = ""
	}
	for _, m := range mutate {
		m(&cfg)
	}

	pool := upstream.NewPool(upstream.DefaultPoolConfig())
	t.Cleanup(pool.CloseIdleConnections)

	cache := permcache.NewMemory()
	t.Cleanup(func() { _ = cache.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := httpapi.NewRouter(cfg, pool, cache, logger)
	r.ApplyRoutes()
	return r
}

// do sends one request through the gateway.
func do(h http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func tokenCookie(value string) *http.Cookie {
	return &http.Cookie{Name: "mudras_token", Value: value}
}

// responseCookies indexes Set-Cookie headers by name.
func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

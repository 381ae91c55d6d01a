package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
)

const (
	healthSampleBytes = 200
	healthQuery       = `{"query":"query __Health { __schema { queryType { name } } }"}`
)

// CheckResult is one diagnostic call. Error is set instead of the status
// fields when no answer came back.
type CheckResult struct {
	OK         bool   `json:"ok"`
	Status     int    `json:"status,omitempty"`
	StatusText string `json:"statusText,omitempty"`
	Sample     string `json:"sample,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HealthReport is the body of GET /api/health.
type HealthReport struct {
	BackendURL string                 `json:"backendUrl"`
	Timestamp  time.Time              `json:"timestamp"`
	Checks     map[string]CheckResult `json:"checks"`
}

// HealthHandler checks, one after another, the backend profile endpoint, the
// backend GraphQL endpoint and this gateway's own REST relay, using the
// caller's cookies.
type HealthHandler struct {
	Backend    *authsdk.Client
	GraphQLURL string

	// Proxy serves /api/rest in process.
	Proxy http.Handler
}

// ServeHTTP runs the checks.
//
//	@Summary		Connectivity diagnostics
//	@Description	Always 200. Each check reports the backend status and the first 200 body bytes.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthReport	"Check results"
//	@Router			/api/health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := HealthReport{
		BackendURL: h.Backend.BaseURL,
		Timestamp:  time.Now().UTC(),
		Checks:     make(map[string]CheckResult, 3),
	}

	header := make(http.Header)
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		header.Set("Cookie", cookie)
	}
	if token, ok := sessionx.TokenFromRequest(r); ok {
		header.Set("Authorization", sessionx.NormalizeBearer(token))
	}

	if !h.Backend.Configured() {
		report.Checks["restPerfilDirecto"] = CheckResult{Error: upstream.MsgNotConfigured}
		report.Checks["graphqlDirecto"] = CheckResult{Error: upstream.MsgNotConfigured}
	} else {
		report.Checks["restPerfilDirecto"] = h.probe(r, http.MethodGet, "/auth/perfil", nil, header)

		gqlHeader := header.Clone()
		gqlHeader.Set("Content-Type", "application/json")
		report.Checks["graphqlDirecto"] = h.probe(r, http.MethodPost, h.GraphQLURL, []byte(healthQuery), gqlHeader)
	}

	report.Checks["restPerfilProxy"] = h.selfCheck(r)

	httpx.WriteJSON(w, http.StatusOK, report)
}

func (h *HealthHandler) probe(r *http.Request, method, path string, body []byte, header http.Header) CheckResult {
	res, err := h.Backend.Probe(r.Context(), method, path, body, header)
	if err != nil {
		return CheckResult{Error: err.Error()}
	}
	return CheckResult{
		OK:         res.OK(),
		Status:     res.StatusCode,
		StatusText: res.Status,
		Sample:     sample(res.Body),
	}
}

// selfCheck serves GET /api/rest/auth/perfil through Proxy without a network
// round trip.
func (h *HealthHandler) selfCheck(r *http.Request) CheckResult {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, "/api/rest/auth/perfil", nil)
	if err != nil {
		return CheckResult{Error: err.Error()}
	}
	req.RemoteAddr = r.RemoteAddr
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	rec := &captureWriter{header: make(http.Header), status: http.StatusOK}
	h.Proxy.ServeHTTP(rec, req)

	return CheckResult{
		OK:         rec.status >= 200 && rec.status < 300,
		Status:     rec.status,
		StatusText: http.StatusText(rec.status),
		Sample:     sample(rec.body.Bytes()),
	}
}

func sample(b []byte) string {
	if len(b) > healthSampleBytes {
		b = b[:healthSampleBytes]
	}
	return string(b)
}

// captureWriter buffers a response served in process.
type captureWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (c *captureWriter) Header() http.Header { return c.header }

func (c *captureWriter) WriteHeader(code int) {
	if !c.wroteHeader {
		c.status = code
		c.wroteHeader = true
	}
}

func (c *captureWriter) Write(b []byte) (int, error) {
	c.wroteHeader = true
	return c.body.Write(b)
}

package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/metrics"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// maxRelayBodyBytes bounds request bodies forwarded to the backend.
const maxRelayBodyBytes = 10 << 20

// logSampleBytes is how much of a failed backend body is logged.
const logSampleBytes = 300

// RestHandler relays a request under /api/rest to the same path on the
// backend, with the session token as bearer. With a Prefix it relays
// /api/<Prefix>/... to /<Prefix>/... instead.
type RestHandler struct {
	BaseURL string
	Client  *http.Client
	Headers upstream.HeaderConfig

	// Prefix is the backend collection the route is pinned to, e.g. "users".
	Prefix string
}

// ServeHTTP handles the REST passthrough.
//
//	@Summary		REST passthrough
//	@Description	Forwards the request to the same path and query on the backend with Authorization,
//	@Description	X-Secret-Key and the inbound Cookie header. Status, body and content type are relayed.
//	@Tags			Passthrough
//	@Security		SessionCookie
//	@Param			path	path	string	true	"Backend path"
//	@Success		200		"Backend response"
//	@Failure		401		{string}	string	"No autenticado"
//	@Failure		500		{string}	string	"BACKEND_URL no configurada"
//	@Failure		502		{string}	string	"Error conectando al backend"
//	@Router			/api/rest/{path} [get]
//	@Router			/api/rest/{path} [post]
//	@Router			/api/rest/{path} [put]
//	@Router			/api/rest/{path} [delete]
func (h *RestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// The escaped path keeps %3F and %23 inside their segment.
	route, path := "rest", strings.TrimPrefix(r.URL.EscapedPath(), "/api/rest")
	if h.Prefix != "" {
		route, path = h.Prefix, strings.TrimPrefix(r.URL.EscapedPath(), "/api/")
	}

	target := upstream.Join(h.BaseURL, path)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	var body []byte
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxRelayBodyBytes))
		if err != nil {
			httpx.WriteText(w, http.StatusRequestEntityTooLarge, "Cuerpo demasiado grande")
			return
		}
	}

	log.Info("-> backend", "method", r.Method, "url", target)

	start := time.Now()
	res, err := upstream.Forward(ctx, h.Client, r.Method, target, upstream.BuildHeaders(h.Headers, r), body)
	if err != nil {
		metrics.ObserveBackend(route, 0, time.Since(start))
		log.Error("backend unreachable", "url", target, "err", err)
		httpx.WriteText(w, http.StatusBadGateway, upstream.MsgUnreachable)
		return
	}

	metrics.ObserveBackend(route, res.StatusCode, time.Since(start))

	if res.OK() {
		log.Info("<- backend", "status", res.StatusCode, "content_type", res.ContentType)
	} else {
		log.Warn("<- backend",
			"status", res.StatusCode,
			"status_text", res.Status,
			"body", res.Sample(logSampleBytes),
		)
	}

	upstream.Relay(w, res)
}

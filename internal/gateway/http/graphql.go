package http

import (
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/metrics"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// GraphQLHandler forwards GraphQL traffic. Unlike the REST relay it does not
// require a session: anonymous operations reach the backend, which decides.
type GraphQLHandler struct {
	Target  string
	Client  *http.Client
	Headers upstream.HeaderConfig
}

// ServeHTTP handles GET and POST /api/graphql.
//
//	@Summary		GraphQL passthrough
//	@Description	POST bodies are forwarded byte for byte (Content-Type defaults to application/json).
//	@Description	GET forwards the query string. Backend Set-Cookie headers are never relayed.
//	@Tags			Passthrough
//	@Accept			json
//	@Produce		json
//	@Success		200	"Backend response"
//	@Failure		500	{string}	string	"BACKEND_URL no configurada"
//	@Failure		502	{string}	string	"Error conectando al backend"
//	@Router			/api/graphql [post]
//	@Router			/api/graphql [get]
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	headers := h.Headers
	target := h.Target
	var body []byte

	switch r.Method {
	case http.MethodPost:
		headers.DefaultContentType = "application/json"

		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxRelayBodyBytes))
		if err != nil {
			httpx.WriteText(w, http.StatusRequestEntityTooLarge, "Cuerpo demasiado grande")
			return
		}
	default:
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
	}

	header := upstream.BuildHeaders(headers, r)
	if r.Method != http.MethodPost {
		header.Del("Content-Type")
	}

	start := time.Now()
	res, err := upstream.Forward(ctx, h.Client, r.Method, target, header, body)
	if err != nil {
		metrics.ObserveBackend("graphql", 0, time.Since(start))
		log.Error("graphql backend unreachable", "err", err)
		httpx.WriteText(w, http.StatusBadGateway, upstream.MsgUnreachable)
		return
	}
	metrics.ObserveBackend("graphql", res.StatusCode, time.Since(start))

	if !res.OK() {
		log.Warn("graphql backend answered error", "status", res.StatusCode, "body", res.Sample(logSampleBytes))
	}

	upstream.Relay(w, res)
}

// GraphQLPreflight answers CORS preflights locally.
//
//	@Summary	GraphQL preflight
//	@Tags		Passthrough
//	@Success	204
//	@Router		/api/graphql [options]
func GraphQLPreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

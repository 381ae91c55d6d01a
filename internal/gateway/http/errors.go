package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// Fallback bodies for backend answers that came back empty.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgInvalidRefresh     = "Refresh inválido"
	MsgInvalidToken       = "Token inválido"
	MsgNotJSON            = "Respuesta no JSON del backend"
	MsgRefreshRequired    = "refreshToken is required"
)

// requireBackend answers 500 before anything else when no backend base URL
// is configured.
func (r *Router) requireBackend() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !r.backend.Configured() {
				slogx.FromContext(req.Context()).Error("backend base URL is not configured")
				httpx.WriteText(w, http.StatusInternalServerError, upstream.MsgNotConfigured)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// writeBackendError maps an authsdk error to the response the browser sees.
// Rejections are relayed with the backend status and text, contract
// violations and transport failures become 502.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error, rejectedFallback string) {
	log := slogx.FromContext(r.Context())

	var (
		rejected    *authsdk.RejectedError
		contract    *authsdk.ContractError
		unreachable *authsdk.UnreachableError
	)
	switch {
	case errors.As(err, &rejected):
		log.Info("backend rejected request", "status", rejected.StatusCode)
		httpx.WriteText(w, rejected.StatusCode, rejected.Message(rejectedFallback))
	case errors.As(err, &contract):
		log.Warn("backend broke response contract",
			"status", contract.StatusCode,
			"content_type", contract.ContentType,
			"err", err,
		)
		httpx.WriteText(w, http.StatusBadGateway, contract.Message(MsgNotJSON))
	case errors.As(err, &unreachable):
		log.Error("backend unreachable", "op", unreachable.Op, "err", unreachable.Err)
		httpx.WriteText(w, http.StatusBadGateway, upstream.MsgUnreachable)
	default:
		log.Error("backend call failed", "err", err)
		httpx.WriteText(w, http.StatusBadGateway, upstream.MsgUnreachable)
	}
}

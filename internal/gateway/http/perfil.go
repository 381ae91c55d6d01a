package http

import (
	"net/http"

	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
)

type PerfilHandler struct {
	Backend *authsdk.Client
}

// ServeHTTP relays the backend profile of the session owner.
//
//	@Summary		Current profile
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.PerfilResponse	"Profile as returned by the backend"
//	@Failure		401	{string}	string					"No autenticado"
//	@Failure		502	{string}	string					"Unreachable backend or non JSON answer"
//	@Router			/api/auth/perfil [get]
func (h *PerfilHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, _ := httpx.SessionToken(r.Context())

	raw, err := h.Backend.PerfilRaw(r.Context(), sessionx.NormalizeBearer(token))
	if err != nil {
		writeBackendError(w, r, err, MsgInvalidToken)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

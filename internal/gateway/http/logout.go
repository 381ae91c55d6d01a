package http

import (
	"net/http"

	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/pkg/cryptox"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

type LogoutHandler struct {
	Cookies        sessionx.Cookies
	Cache          permcache.Cache
	FingerprintKey []byte
}

// ServeHTTP clears every session cookie the gateway recognises and evicts
// the cached permissions of the session. The backend is not told; its
// tokens simply expire.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	OKResponse	"Cookies cleared"
//	@Router			/api/auth/logout [post]
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if token, ok := sessionx.TokenFromRequest(r); ok && h.Cache != nil {
		key := cryptox.FingerprintToken(h.FingerprintKey, token)
		if err := h.Cache.Delete(r.Context(), key); err != nil {
			log.Warn("permission cache eviction failed", "cache", h.Cache.Name(), "err", err)
		}
	}

	names := append([]string{sessionx.CookieRefresh}, sessionx.TokenCookieNames...)
	h.Cookies.Clear(w, names...)

	log.Info("session cookies cleared")
	httpx.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

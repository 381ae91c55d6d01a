package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// RefreshRequest is the optional body of POST /api/auth/refresh. It is only
// read when the refresh cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// OKResponse acknowledges cookie only operations.
type OKResponse struct {
	OK bool `json:"ok"`
}

type RefreshHandler struct {
	Backend *authsdk.Client
	Cookies sessionx.Cookies
}

// ServeHTTP rotates the session cookies.
//
//	@Summary		Refresh session
//	@Description	Uses the mudras_refresh cookie, or refreshToken from the JSON body when the cookie
//	@Description	is absent, to obtain a new token pair. Rotates mudras_token (12h) and mudras_refresh (7d).
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	false	"Fallback refresh token"
//	@Success		200		{object}	OKResponse		"Cookies rotated"
//	@Failure		400		{string}	string			"refreshToken is required"
//	@Failure		401		{string}	string			"Backend rejection text"
//	@Failure		502		{string}	string			"Unreachable backend or non JSON answer"
//	@Router			/api/auth/refresh [post]
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := sessionx.FirstPresent(r, sessionx.CookieRefresh)
	if !ok {
		var req RefreshRequest
		// A missing or malformed body just means no fallback token.
		_ = json.NewDecoder(io.LimitReader(r.Body, maxCredentialsBytes)).Decode(&req)
		token = req.RefreshToken
	}
	if token == "" {
		httpx.WriteText(w, http.StatusBadRequest, MsgRefreshRequired)
		return
	}

	pair, err := h.Backend.Refresh(ctx, token)
	if err != nil {
		writeBackendError(w, r, err, MsgInvalidRefresh)
		return
	}

	if pair.AccessToken != "" {
		h.Cookies.SetToken(w, pair.AccessToken, sessionx.RefreshedTokenTTL)
	}
	if pair.RefreshToken != "" {
		h.Cookies.SetRefresh(w, pair.RefreshToken)
	}

	slogx.FromContext(ctx).Info("session refreshed", "from_cookie", ok)
	httpx.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

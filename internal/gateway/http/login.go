package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/cryptox"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// maxCredentialsBytes bounds login bodies read into memory.
const maxCredentialsBytes = 64 << 10

// LoginResponse is the only thing a login returns to the browser. Tokens
// travel as httpOnly cookies.
type LoginResponse struct {
	Usuario json.RawMessage `json:"usuario" swaggertype:"object"`
}

// LoginHandler exchanges credentials for session cookies. Customer selects
// the storefront variant: /auth/login-email, a one hour token and no refresh
// cookie.
type LoginHandler struct {
	Backend  *authsdk.Client
	Cookies  sessionx.Cookies
	Customer bool
}

// ServeHTTP handles POST /api/auth/login and POST /api/auth/login-cliente.
//
//	@Summary		Log in
//	@Description	Forwards the raw credentials body to the backend. On success sets mudras_token
//	@Description	(24h, 1h for login-cliente) and mudras_refresh (7d, login only) as httpOnly cookies
//	@Description	and returns only the user. Backend rejections are relayed with their status and text.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	LoginResponse	"Authenticated user"
//	@Failure		401	{string}	string			"Backend rejection text"
//	@Failure		500	{string}	string			"BACKEND_URL no configurada"
//	@Failure		502	{string}	string			"Unreachable backend or non JSON answer"
//	@Router			/api/auth/login [post]
//	@Router			/api/auth/login-cliente [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCredentialsBytes))
	if err != nil {
		httpx.WriteText(w, http.StatusRequestEntityTooLarge, "Cuerpo demasiado grande")
		return
	}

	login := h.Backend.Login
	ttl := sessionx.LoginTokenTTL
	if h.Customer {
		login = h.Backend.LoginEmail
		ttl = sessionx.ClientLoginTokenTTL
	}

	res, err := login(ctx, body)
	if err != nil {
		writeBackendError(w, r, err, MsgInvalidCredentials)
		return
	}

	if res.AccessToken != "" {
		h.Cookies.SetToken(w, res.AccessToken, ttl)
	}
	if !h.Customer && res.RefreshToken != "" {
		h.Cookies.SetRefresh(w, res.RefreshToken)
	}

	if res.AccessToken != "" {
		log.Info("login succeeded",
			"customer", h.Customer,
			"session", cryptox.ShortFingerprint(res.AccessToken),
		)
	} else {
		log.Warn("login succeeded without access token", "customer", h.Customer)
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Usuario: res.Usuario})
}

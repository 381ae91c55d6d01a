package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/jwtx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
)

const (
	present = "PRESENTE"
	absent  = "AUSENTE"
	missing = "FALTANTE"
)

// CookieInfo reports a cookie without its value.
type CookieInfo struct {
	Name     string `json:"name"`
	HasValue bool   `json:"hasValue"`
}

// TokenClaims is the unverified view of a session token.
type TokenClaims struct {
	Sub     string     `json:"sub,omitempty"`
	Typ     string     `json:"typ,omitempty"`
	Roles   []string   `json:"roles,omitempty"`
	Exp     *time.Time `json:"exp,omitempty"`
	Expired bool       `json:"expired"`
}

// DebugAuthResponse is the body of GET /api/debug-auth.
type DebugAuthResponse struct {
	Cookies     []CookieInfo `json:"cookies"`
	MudrasToken string       `json:"mudrasToken"`
	TokenCookie string       `json:"tokenCookie,omitempty"`
	Claims      *TokenClaims `json:"claims,omitempty"`
	ClaimsError string       `json:"claimsError,omitempty"`
}

// DebugAuth describes the session cookies of the caller. Claims are decoded
// without verification; the backend remains the only judge of validity.
//
//	@Summary		Session cookie diagnostics
//	@Description	Claims are decoded without verification; the backend remains the only judge of validity.
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	DebugAuthResponse	"Cookie names, presence and unverified claims"
//	@Router			/api/debug-auth [get]
func DebugAuth(w http.ResponseWriter, r *http.Request) {
	res := DebugAuthResponse{Cookies: []CookieInfo{}, MudrasToken: absent}

	for _, c := range r.Cookies() {
		res.Cookies = append(res.Cookies, CookieInfo{Name: c.Name, HasValue: c.Value != ""})
	}
	if _, ok := sessionx.FirstPresent(r, sessionx.CookieToken); ok {
		res.MudrasToken = present
	}

	if name, ok := sessionx.FirstPresentName(r, sessionx.TokenCookieNames...); ok {
		res.TokenCookie = name
		token, _ := sessionx.FirstPresent(r, name)

		claims, err := jwtx.Peek(token)
		if err != nil {
			res.ClaimsError = err.Error()
		} else {
			tc := &TokenClaims{
				Sub:     claims.Subject,
				Typ:     claims.Typ,
				Roles:   claims.Roles,
				Expired: claims.Expired(time.Now()),
			}
			if claims.ExpiresAt != nil {
				exp := claims.ExpiresAt.UTC()
				tc.Exp = &exp
			}
			res.Claims = tc
		}
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

// DebugEnvResponse is the body of GET /api/debug-env. Secrets are reported
// by presence only.
type DebugEnvResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	BackendURL  string    `json:"backendUrl"`
	GraphQLURL  string    `json:"graphqlUrl"`
	FrontendURL string    `json:"frontendUrl"`
	SecretKey   string    `json:"secretKey"`
	Secure      bool      `json:"secureCookies"`
	Cache       string    `json:"permissionCache"`
	Version     string    `json:"version"`
}

type DebugEnvHandler struct {
	Config    Config
	CacheName string
}

// ServeHTTP reports the resolved configuration.
//
//	@Summary		Configuration diagnostics
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	DebugEnvResponse	"Resolved configuration"
//	@Router			/api/debug-env [get]
func (h *DebugEnvHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	secret := missing
	if h.Config.SecretKey != "" {
		secret = present
	}

	httpx.WriteJSON(w, http.StatusOK, DebugEnvResponse{
		Timestamp:   time.Now().UTC(),
		Environment: h.Config.Env,
		BackendURL:  h.Config.BackendURL,
		GraphQLURL:  h.Config.GraphQLURL,
		FrontendURL: h.Config.FrontendURL,
		SecretKey:   secret,
		Secure:      h.Config.Secure,
		Cache:       h.CacheName,
		Version:     h.Config.BuildVersion,
	})
}

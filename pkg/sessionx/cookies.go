// Package sessionx holds the cookie contract shared by the edge gate and the
// token proxy: which cookies carry a session, how long each route keeps them
// and how they are written and cleared.
package sessionx

import (
	"net/http"
	"regexp"
	"time"
)

const (
	// CookieToken carries the access token minted by the login routes.
	CookieToken = "mudras_token"

	// CookieRefresh carries the refresh token. Only the refresh route reads it.
	CookieRefresh = "mudras_refresh"
)

// TokenCookieNames lists every cookie name a session token has historically
// been stored under, in resolution order.
var TokenCookieNames = []string{
	CookieToken,
	"mudras_jwt",
	"access_token",
	"auth_token",
}

// Per-route cookie lifetimes. The access token lifetime differs per route and
// is kept that way on purpose: each constant is owned by one route.
const (
	LoginTokenTTL       = 24 * time.Hour
	RefreshedTokenTTL   = 12 * time.Hour
	ClientLoginTokenTTL = 1 * time.Hour
	RefreshCookieTTL    = 7 * 24 * time.Hour
)

var bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)

// FirstPresent returns the value of the first cookie in names that is present
// with a non-empty value.
func FirstPresent(r *http.Request, names ...string) (string, bool) {
	for _, name := range names {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			continue
		}
		return c.Value, true
	}
	return "", false
}

// FirstPresentName is FirstPresent but reports the cookie name instead of its
// value. Used by diagnostics.
func FirstPresentName(r *http.Request, names ...string) (string, bool) {
	for _, name := range names {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return name, true
		}
	}
	return "", false
}

// TokenFromRequest resolves the session token from the recognised cookies.
func TokenFromRequest(r *http.Request) (string, bool) {
	return FirstPresent(r, TokenCookieNames...)
}

// NormalizeBearer turns a stored token into an Authorization header value.
// Values already carrying a Bearer scheme are returned untouched.
func NormalizeBearer(token string) string {
	if bearerPrefix.MatchString(token) {
		return token
	}
	return "Bearer " + token
}

// Cookies writes session cookies with a fixed set of flags.
type Cookies struct {
	// Secure marks cookies Secure. Enabled in production only.
	Secure bool
}

// SetToken writes the access token cookie with the given lifetime.
func (c Cookies) SetToken(w http.ResponseWriter, value string, ttl time.Duration) {
	c.set(w, CookieToken, value, int(ttl.Seconds()))
}

// SetRefresh writes the refresh token cookie.
func (c Cookies) SetRefresh(w http.ResponseWriter, value string) {
	c.set(w, CookieRefresh, value, int(RefreshCookieTTL.Seconds()))
}

// Clear expires the named cookies on the client.
func (c Cookies) Clear(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		c.set(w, name, "", -1)
	}
}

func (c Cookies) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

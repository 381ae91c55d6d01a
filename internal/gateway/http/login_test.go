package http_test

import (
	"net/http"
	"testing"

	httpapi "github.com/aussiebroadwan/mudras/internal/gateway/http"
	"github.com/stretchr/testify/require"
)

const loginOK = `{"accessToken":"at-1","refreshToken":"rt-1","usuario":{"id":7,"username":"ana","roles":["vendedor"]}}`

func TestLogin(t *testing.T) {
	t.Run("valid credentials set cookies and return only the user", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginOK)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"x"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"usuario":{"id":7,"username":"ana","roles":["vendedor"]}}`, rec.Body.String())
		require.NotContains(t, rec.Body.String(), "at-1")
		require.NotContains(t, rec.Body.String(), "rt-1")

		cookies := responseCookies(rec)
		require.Contains(t, cookies, "mudras_token")
		require.Contains(t, cookies, "mudras_refresh")

		token := cookies["mudras_token"]
		require.Equal(t, "at-1", token.Value)
		require.True(t, token.HttpOnly)
		require.False(t, token.Secure)
		require.Equal(t, http.SameSiteLaxMode, token.SameSite)
		require.Equal(t, "/", token.Path)
		require.Equal(t, 86400, token.MaxAge)

		refresh := cookies["mudras_refresh"]
		require.Equal(t, "rt-1", refresh.Value)
		require.True(t, refresh.HttpOnly)
		require.Equal(t, 604800, refresh.MaxAge)

		sent := b.last()
		require.Equal(t, `{"username":"ana","password":"x"}`, sent.Body)
		require.Equal(t, testSecret, sent.Header.Get("X-Secret-Key"))
		require.Equal(t, "no-store", sent.Header.Get("Cache-Control"))
	})

	t.Run("production cookies are secure", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginOK)
		})
		gw := newGateway(t, b.URL, func(c *httpapi.Config) { c.Secure = true })

		rec := do(gw, http.MethodPost, "/api/auth/login", `{"username":"ana"}`)
		require.True(t, responseCookies(rec)["mudras_token"].Secure)
		require.True(t, responseCookies(rec)["mudras_refresh"].Secure)
	})

	t.Run("invalid credentials relay status and text without cookies", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Credenciales inválidas"))
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"bad"}`)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Credenciales inválidas", rec.Body.String())
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("empty rejection gets fallback text", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/login", `{}`)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, httpapi.MsgInvalidCredentials, rec.Body.String())
	})

	t.Run("non JSON success is 502 with raw text", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<h1>proxy error</h1>"))
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/login", `{}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "<h1>proxy error</h1>", rec.Body.String())
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("unreachable backend", func(t *testing.T) {
		b := newBackend(t)
		url := b.URL
		b.Close()
		gw := newGateway(t, url)

		rec := do(gw, http.MethodPost, "/api/auth/login", `{}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "Error conectando al backend", rec.Body.String())
	})

	t.Run("no backend configured", func(t *testing.T) {
		gw := newGateway(t, "")

		rec := do(gw, http.MethodPost, "/api/auth/login", `{}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "BACKEND_URL no configurada", rec.Body.String())
	})
}

func TestLoginCliente(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login-email", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"ct-1","refreshToken":"ignored","usuario":{"email":"c@x.com"}}`)
	})
	gw := newGateway(t, b.URL)

	rec := do(gw, http.MethodPost, "/api/auth/login-cliente", `{"email":"c@x.com","password":"x"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"usuario":{"email":"c@x.com"}}`, rec.Body.String())

	cookies := responseCookies(rec)
	require.Equal(t, "ct-1", cookies["mudras_token"].Value)
	require.Equal(t, 3600, cookies["mudras_token"].MaxAge)
	require.NotContains(t, cookies, "mudras_refresh")
	require.Equal(t, "/auth/login-email", b.last().Path)
}

func TestLoginRateLimited(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	gw := newGateway(t, b.URL)

	var last int
	for range 20 {
		last = do(gw, http.MethodPost, "/api/auth/login", `{"username":"brute"}`).Code
		if last == http.StatusTooManyRequests {
			break
		}
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

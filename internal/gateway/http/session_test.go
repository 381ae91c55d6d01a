package http_test

import (
	"net/http"
	"testing"

	httpapi "github.com/aussiebroadwan/mudras/internal/gateway/http"
	"github.com/stretchr/testify/require"
)

func TestRefresh(t *testing.T) {
	newRefreshBackend := func(t *testing.T) *backend {
		b := newBackend(t)
		b.handle("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"accessToken":"at-2","refreshToken":"rt-2"}`)
		})
		return b
	}

	t.Run("no token anywhere", func(t *testing.T) {
		b := newRefreshBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/refresh", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "refreshToken is required", rec.Body.String())
		require.Empty(t, b.requests())
	})

	t.Run("cookie wins over body", func(t *testing.T) {
		b := newRefreshBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/refresh", `{"refreshToken":"from-body"}`,
			&http.Cookie{Name: "mudras_refresh", Value: "from-cookie"},
		)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"ok":true}`, rec.Body.String())
		require.JSONEq(t, `{"refreshToken":"from-cookie"}`, b.last().Body)
	})

	t.Run("body fallback rotates both cookies", func(t *testing.T) {
		b := newRefreshBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/refresh", `{"refreshToken":"from-body"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"refreshToken":"from-body"}`, b.last().Body)

		cookies := responseCookies(rec)
		require.Equal(t, "at-2", cookies["mudras_token"].Value)
		require.Equal(t, 43200, cookies["mudras_token"].MaxAge)
		require.Equal(t, "rt-2", cookies["mudras_refresh"].Value)
		require.Equal(t, 604800, cookies["mudras_refresh"].MaxAge)
		require.True(t, cookies["mudras_refresh"].HttpOnly)
	})

	t.Run("rejected refresh", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/auth/refresh", "",
			&http.Cookie{Name: "mudras_refresh", Value: "stale"},
		)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, httpapi.MsgInvalidRefresh, rec.Body.String())
		require.Empty(t, rec.Result().Cookies())
	})
}

func TestLogout(t *testing.T) {
	b := newBackend(t)
	gw := newGateway(t, b.URL)

	rec := do(gw, http.MethodPost, "/api/auth/logout", "", tokenCookie("tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())

	cookies := responseCookies(rec)
	for _, name := range []string{"mudras_token", "mudras_refresh", "mudras_jwt", "access_token", "auth_token"} {
		require.Contains(t, cookies, name)
		require.Less(t, cookies[name].MaxAge, 0, name)
		require.Empty(t, cookies[name].Value)
		require.True(t, cookies[name].HttpOnly)
	}
	require.Empty(t, b.requests())
}

func TestPerfil(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		b := newBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/auth/perfil", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "No autenticado", rec.Body.String())
		require.Empty(t, b.requests())
	})

	t.Run("relays profile", func(t *testing.T) {
		b := newBackend(t)
		b.handle("GET /auth/perfil", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"perfil":{"sub":"1","username":"ana","roles":["administrador"],"typ":"EMPRESA"}}`)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/auth/perfil", "", &http.Cookie{Name: "mudras_jwt", Value: "legacy"})

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"perfil":{"sub":"1","username":"ana","roles":["administrador"],"typ":"EMPRESA"}}`, rec.Body.String())
		require.Equal(t, "Bearer legacy", b.last().Header.Get("Authorization"))
	})

	t.Run("invalid token fallback", func(t *testing.T) {
		b := newBackend(t)
		b.handle("GET /auth/perfil", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/auth/perfil", "", tokenCookie("expired"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, httpapi.MsgInvalidToken, rec.Body.String())
	})
}

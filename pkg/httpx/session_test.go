package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRequireSession(t *testing.T) {
	var got string
	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.SessionToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.RequireSession())

	t.Run("rejects without cookie", func(t *testing.T) {
		got = ""
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rest/articulos", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, httpx.MsgUnauthenticated, rec.Body.String())
		require.Empty(t, got, "handler must not run")
	})

	t.Run("stores resolved token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rest/articulos", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "legacy"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "legacy", got)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

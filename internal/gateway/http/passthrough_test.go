package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "github.com/aussiebroadwan/mudras/internal/gateway/http"
	"github.com/stretchr/testify/require"
)

func TestRestPassthrough(t *testing.T) {
	t.Run("no session never reaches backend", func(t *testing.T) {
		b := newBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/rest/ventas", "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "No autenticado", rec.Body.String())
		require.Empty(t, b.requests())
	})

	t.Run("forwards path query headers and body", func(t *testing.T) {
		b := newBackend(t)
		b.handle("POST /ventas/42/items", func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "backend", Value: "leak"})
			writeJSON(w, http.StatusCreated, `{"id":7}`)
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/rest/ventas/42/items?expand=1&sort=desc", `{"sku":"A1"}`,
			tokenCookie("tok"),
		)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"id":7}`, rec.Body.String())
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Empty(t, rec.Header().Values("Set-Cookie"))

		got := b.last()
		require.Equal(t, http.MethodPost, got.Method)
		require.Equal(t, "/ventas/42/items", got.Path)
		require.Equal(t, "expand=1&sort=desc", got.Query)
		require.Equal(t, `{"sku":"A1"}`, got.Body)
		require.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
		require.Equal(t, testSecret, got.Header.Get("X-Secret-Key"))
		require.Equal(t, "application/json", got.Header.Get("Content-Type"))
		require.Equal(t, "mudras_token=tok", got.Header.Get("Cookie"))
	})

	t.Run("encoded reserved characters stay in their segment", func(t *testing.T) {
		b := newBackend(t)
		b.handle("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{}`)
		})
		gw := newGateway(t, b.URL)

		tests := []struct {
			name    string
			target  string
			rawPath string
			path    string
		}{
			{"question mark", "/api/rest/articulos/a%3Fadmin=1?page=2", "/articulos/a%3Fadmin=1", "/articulos/a?admin=1"},
			{"hash", "/api/rest/articulos/a%23b?page=2", "/articulos/a%23b", "/articulos/a#b"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := do(gw, http.MethodGet, tt.target, "", tokenCookie("tok"))
				require.Equal(t, http.StatusOK, rec.Code)

				got := b.last()
				require.Equal(t, tt.path, got.Path)
				require.Equal(t, tt.rawPath, got.RawPath)
				require.Equal(t, "page=2", got.Query)
			})
		}
	})

	t.Run("relays backend errors verbatim", func(t *testing.T) {
		b := newBackend(t)
		b.handle("DELETE /ventas/1", func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`mantenimiento`))
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodDelete, "/api/rest/ventas/1", "", tokenCookie("tok"))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "mantenimiento", rec.Body.String())
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("unreachable backend", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		gw := newGateway(t, dead.URL)

		rec := do(gw, http.MethodGet, "/api/rest/ventas", "", tokenCookie("tok"))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "Error conectando al backend", rec.Body.String())
	})

	t.Run("backend not configured", func(t *testing.T) {
		gw := newGateway(t, "")

		rec := do(gw, http.MethodGet, "/api/rest/ventas", "", tokenCookie("tok"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "BACKEND_URL no configurada", rec.Body.String())
	})

	t.Run("unknown api path", func(t *testing.T) {
		b := newBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/nada", "", tokenCookie("tok"))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, b.requests())
	})
}

func TestUsersPassthrough(t *testing.T) {
	b := newBackend(t)
	b.handle("/users/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":7}`)
	})
	b.handle("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	gw := newGateway(t, b.URL)

	t.Run("item", func(t *testing.T) {
		rec := do(gw, http.MethodPut, "/api/users/7", `{"nombre":"Ana"}`, tokenCookie("tok"))

		require.Equal(t, http.StatusOK, rec.Code)
		got := b.last()
		require.Equal(t, "/users/7", got.Path)
		require.Equal(t, `{"nombre":"Ana"}`, got.Body)
		require.Empty(t, got.Header.Get("Cookie"))
	})

	t.Run("item reads and nested paths are not relayed", func(t *testing.T) {
		before := len(b.requests())

		for _, target := range []string{"/api/users/7", "/api/users/7/roles"} {
			rec := do(gw, http.MethodGet, target, "", tokenCookie("tok"))
			require.Equal(t, http.StatusNotFound, rec.Code, target)
		}
		rec := do(gw, http.MethodDelete, "/api/users/7/roles", "", tokenCookie("tok"))
		require.Equal(t, http.StatusNotFound, rec.Code)

		require.Len(t, b.requests(), before)
	})

	t.Run("collection", func(t *testing.T) {
		rec := do(gw, http.MethodGet, "/api/users?x=1", "", tokenCookie("tok"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
		got := b.last()
		require.Equal(t, "/users", got.Path)
		require.Equal(t, "x=1", got.Query)
	})
}

func TestGraphQLPassthrough(t *testing.T) {
	newGraphQLBackend := func(t *testing.T) *backend {
		b := newBackend(t)
		b.handle("/graphql", func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "backend", Value: "leak"})
			writeJSON(w, http.StatusOK, `{"data":{"ok":true}}`)
		})
		return b
	}

	t.Run("anonymous post forwards raw body", func(t *testing.T) {
		b := newGraphQLBackend(t)
		gw := newGateway(t, b.URL)

		req := httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(`{"query":"{ ok }"}`))
		rec := httptest.NewRecorder()
		gw.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"data":{"ok":true}}`, rec.Body.String())
		require.Empty(t, rec.Header().Values("Set-Cookie"))

		got := b.last()
		require.Equal(t, "/graphql", got.Path)
		require.Equal(t, `{"query":"{ ok }"}`, got.Body)
		require.Equal(t, "application/json", got.Header.Get("Content-Type"))
		require.Empty(t, got.Header.Get("Authorization"))
		require.Equal(t, testSecret, got.Header.Get("X-Secret-Key"))
	})

	t.Run("session adds bearer", func(t *testing.T) {
		b := newGraphQLBackend(t)
		gw := newGateway(t, b.URL)

		do(gw, http.MethodPost, "/api/graphql", `{"query":"{ ok }"}`, tokenCookie("tok"))
		require.Equal(t, "Bearer tok", b.last().Header.Get("Authorization"))
	})

	t.Run("get forwards query string", func(t *testing.T) {
		b := newGraphQLBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodGet, "/api/graphql?query=%7Bok%7D", "")

		require.Equal(t, http.StatusOK, rec.Code)
		got := b.last()
		require.Equal(t, http.MethodGet, got.Method)
		require.Equal(t, "query=%7Bok%7D", got.Query)
		require.Empty(t, got.Header.Get("Content-Type"))
	})

	t.Run("preflight answered locally", func(t *testing.T) {
		b := newGraphQLBackend(t)
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodOptions, "/api/graphql", "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, b.requests())
	})

	t.Run("relays backend errors with default content type", func(t *testing.T) {
		b := newBackend(t)
		b.handle("/graphql", func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"errors":[{"message":"mantenimiento"}]}`))
		})
		gw := newGateway(t, b.URL)

		rec := do(gw, http.MethodPost, "/api/graphql", `{"query":"{ ok }"}`)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, `{"errors":[{"message":"mantenimiento"}]}`, rec.Body.String())
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("unreachable backend", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		gw := newGateway(t, dead.URL)

		rec := do(gw, http.MethodPost, "/api/graphql", `{"query":"{ ok }"}`)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "Error conectando al backend", rec.Body.String())
	})

	t.Run("explicit graphql target", func(t *testing.T) {
		b := newGraphQLBackend(t)
		gw := newGateway(t, "http://127.0.0.1:1", func(c *httpapi.Config) {
			c.GraphQLURL = b.URL + "/graphql"
		})

		rec := do(gw, http.MethodPost, "/api/graphql", `{"query":"{ ok }"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, b.requests(), 1)
	})
}

package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationWiring(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(backend.Close)

	cfg := Config{
		BackendURL:          backend.URL,
		GraphQLURL:          backend.URL + "/graphql",
		Env:                 "test",
		LogLevel:            "error",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		UpstreamTimeout:     5 * time.Second,
		PermisosCacheTTL:    time.Minute,
	}

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.cache.Close() })

	require.Equal(t, "memory", application.cache.Name())

	t.Run("rest relay reaches backend", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rest/articulos", nil)
		req.AddCookie(&http.Cookie{Name: "mudras_token", Value: "tok"})
		rec := httptest.NewRecorder()

		application.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"path":"/articulos"}`, rec.Body.String())
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("readyz ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("pages 404 without frontend", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/precios", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("graphql posts to configured target", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(`{}`))
		application.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"path":"/graphql"}`, rec.Body.String())
	})
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	_, err := New(Config{
		Env:       "test",
		LogLevel:  "error",
		RedisAddr: "127.0.0.1:1",
	})
	require.Error(t, err)
}

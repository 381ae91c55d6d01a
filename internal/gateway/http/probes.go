package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process serves requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	503 when no backend base URL is configured or the permission cache does not answer.
//	@Description	The backend itself is not called.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"degraded"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	backend *authsdk.Client,
	cache permcache.Cache,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Backend: "ok", Cache: cache.Name() + ": ok"}
		degraded := false

		if !backend.Configured() {
			checks.Backend = "error: " + upstream.MsgNotConfigured
			degraded = true
		}
		if err := cache.Ping(r.Context()); err != nil {
			checks.Cache = cache.Name() + ": error: " + err.Error()
			degraded = true
		}

		status, code := "ok", http.StatusOK
		if degraded {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

package http

import (
	"crypto/rand"
	"net/http"
	"slices"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/metrics"
	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/cryptox"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/jwtx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// DefaultPermisosTTL is how long a resolved permission set is reused.
const DefaultPermisosTTL = 5 * time.Minute

// PermisosResponse is the effective permission set of the session owner.
// Permitido is only present when ?permiso= was given.
type PermisosResponse struct {
	Permisos    []string `json:"permisos"`
	Roles       []string `json:"roles"`
	AccesoTotal bool     `json:"acceso_total"`
	Permitido   *bool    `json:"permitido,omitempty"`
}

type PermisosHandler struct {
	Backend        *authsdk.Client
	Cache          permcache.Cache
	TTL            time.Duration
	FingerprintKey []byte

	now func() time.Time
}

// ServeHTTP resolves permissions through the cache.
//
//	@Summary		Effective permissions
//	@Description	Profile roles and backend permissions of the session owner. acceso_total is set for
//	@Description	the administrador role or the * permission. Results are cached per session.
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Param			permiso	query		string				false	"Permission to check"
//	@Success		200		{object}	PermisosResponse	"Effective permissions"
//	@Failure		401		{string}	string				"No autenticado"
//	@Failure		502		{string}	string				"Unreachable backend or non JSON answer"
//	@Router			/api/auth/permisos [get]
func (h *PermisosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	token, _ := httpx.SessionToken(ctx)

	key := cryptox.FingerprintToken(h.FingerprintKey, token)

	entry, hit, err := h.Cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("permission cache read failed", "cache", h.Cache.Name(), "err", err)
		metrics.PermisosCache.WithLabelValues(h.Cache.Name(), "error").Inc()
	case hit:
		metrics.PermisosCache.WithLabelValues(h.Cache.Name(), "hit").Inc()
	default:
		metrics.PermisosCache.WithLabelValues(h.Cache.Name(), "miss").Inc()
	}

	if !hit {
		entry, err = h.resolve(r, token)
		if err != nil {
			writeBackendError(w, r, err, MsgInvalidToken)
			return
		}

		if ttl := h.ttlFor(token); ttl > 0 {
			if err := h.Cache.Set(ctx, key, entry, ttl); err != nil {
				log.Warn("permission cache write failed", "cache", h.Cache.Name(), "err", err)
			}
		}
	}

	res := PermisosResponse{
		Permisos:    entry.Permisos,
		Roles:       entry.Roles,
		AccesoTotal: entry.AccesoTotal,
	}
	if permiso := r.URL.Query().Get("permiso"); permiso != "" {
		allowed := entry.Allows(permiso)
		res.Permitido = &allowed
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *PermisosHandler) resolve(r *http.Request, token string) (*permcache.Entry, error) {
	bearer := sessionx.NormalizeBearer(token)

	perfil, err := h.Backend.Perfil(r.Context(), bearer)
	if err != nil {
		return nil, err
	}
	permisos, err := h.Backend.Permisos(r.Context(), bearer)
	if err != nil {
		return nil, err
	}

	roles := perfil.Roles
	if roles == nil {
		roles = []string{}
	}

	return &permcache.Entry{
		Permisos:    permisos,
		Roles:       roles,
		AccesoTotal: perfil.IsAdmin() || slices.Contains(permisos, authsdk.WildcardPermission),
	}, nil
}

// ttlFor caps the configured lifetime at the token's own expiry when the
// token is a JWT that carries one.
func (h *PermisosHandler) ttlFor(token string) time.Duration {
	ttl := h.TTL
	if ttl <= 0 {
		ttl = DefaultPermisosTTL
	}

	claims, err := jwtx.Peek(token)
	if err != nil {
		return ttl
	}
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	if remaining, ok := claims.Remaining(now()); ok {
		return min(ttl, remaining)
	}
	return ttl
}

// fingerprintKey derives the cache key for permission entries. Replicas
// sharing a secret share keys; without one each process picks its own.
func fingerprintKey(secret string) []byte {
	if secret != "" {
		return []byte(cryptox.FingerprintToken(nil, "mudras-permcache:"+secret))
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

package edge

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/mudras/internal/gateway/metrics"
	"github.com/aussiebroadwan/mudras/pkg/cryptox"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

// Middleware applies Decide to every request. API routes other than
// /api/auth are not pages and are left to the token proxy.
func (p *Policy) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAPI(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			d := p.Decide(r.Context(), r)
			metrics.EdgeDecisions.WithLabelValues(d.Action.String(), d.Reason).Inc()

			attrs := []any{"action", d.Action.String(), "reason", d.Reason}
			if token, ok := sessionx.TokenFromRequest(r); ok {
				attrs = append(attrs, "session", cryptox.ShortFingerprint(token))
			}
			if d.Action == Redirect {
				attrs = append(attrs, "location", d.Location)
			}
			slogx.FromContext(r.Context()).Debug("edge_decision", attrs...)

			if d.Action == Redirect {
				httpx.NoCache(w)
				http.Redirect(w, r, d.Location, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

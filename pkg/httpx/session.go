package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/mudras/pkg/sessionx"
)

type ctxKey string

const ctxKeySessionToken ctxKey = "session_token"

// MsgUnauthenticated is the body returned when a route needs a session
// cookie and none is present.
const MsgUnauthenticated = "No autenticado"

// RequireSession rejects requests without a recognised session cookie with
// 401 before anything else runs. The resolved token is stored in the request
// context for SessionToken.
func RequireSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessionx.TokenFromRequest(r)
			if !ok {
				WriteText(w, http.StatusUnauthorized, MsgUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySessionToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken returns the token stored by RequireSession.
func SessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKeySessionToken).(string)
	return token, ok && token != ""
}

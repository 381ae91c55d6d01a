// Package jwtx decodes session tokens without verifying them.
//
// The gateway never decides whether a token is valid; the backend does. The
// decoded claims only feed diagnostics and bound how long derived data may be
// cached.
package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for tokens that are not three-segment JWTs.
var ErrNotJWT = errors.New("jwtx: token is not a JWT")

// Claims mirrors the profile fields the backend embeds in session tokens.
type Claims struct {
	jwt.RegisteredClaims

	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Typ      string   `json:"typ,omitempty"` // EMPRESA or CLIENTE
}

// Peek decodes token (optionally prefixed with a Bearer scheme) without
// checking its signature, issuer or expiry.
func Peek(token string) (*Claims, error) {
	raw := strings.TrimSpace(token)
	if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "Bearer") {
		raw = strings.TrimSpace(rest)
	}
	if strings.Count(raw, ".") != 2 {
		return nil, ErrNotJWT
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// Expired reports whether exp is set and not after now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}

// Remaining returns the time left until exp. ok is false when the token has
// no exp claim.
func (c *Claims) Remaining(now time.Time) (d time.Duration, ok bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return max(c.ExpiresAt.Sub(now), 0), true
}

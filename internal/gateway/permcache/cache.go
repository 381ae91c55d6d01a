// Package permcache keeps resolved permission sets per session so repeated
// page loads do not hit the backend for every permission check.
//
// Keys are token fingerprints, never the tokens themselves.
package permcache

import (
	"context"
	"errors"
	"slices"
	"time"
)

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("permcache: closed")

// Entry is what the gateway answers for GET /api/auth/permisos.
type Entry struct {
	Permisos    []string `json:"permisos"`
	Roles       []string `json:"roles"`
	AccesoTotal bool     `json:"acceso_total"`
}

// Allows reports whether the entry grants permiso.
func (e *Entry) Allows(permiso string) bool {
	return e.AccesoTotal || slices.Contains(e.Permisos, permiso)
}

// Cache stores entries with a per-entry lifetime.
type Cache interface {
	// Get returns the entry for key. ok is false on a miss or expiry.
	Get(ctx context.Context, key string) (entry *Entry, ok bool, err error)

	// Set stores entry for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error

	// Delete drops key if present.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing store is usable.
	Ping(ctx context.Context) error

	// Name identifies the backend in health output.
	Name() string

	Close() error
}

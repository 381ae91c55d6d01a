package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
)

// PerfilRaw returns the GET /auth/perfil body untouched. bearer is a full
// Authorization header value.
func (c *Client) PerfilRaw(ctx context.Context, bearer string) (json.RawMessage, error) {
	return c.call(ctx, "perfil", http.MethodGet, "/auth/perfil", nil, bearer)
}

// Perfil resolves the owner of bearer.
func (c *Client) Perfil(ctx context.Context, bearer string) (*Perfil, error) {
	data, err := c.PerfilRaw(ctx, bearer)
	if err != nil {
		return nil, err
	}

	var out PerfilResponse
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out.Perfil, nil
}

// Permisos lists the effective permissions of bearer.
func (c *Client) Permisos(ctx context.Context, bearer string) ([]string, error) {
	data, err := c.call(ctx, "permisos", http.MethodGet, "/auth/permisos", nil, bearer)
	if err != nil {
		return nil, err
	}

	var out PermisosResponse
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	if out.Permisos == nil {
		out.Permisos = []string{}
	}
	return out.Permisos, nil
}

// IsAdmin reports whether the profile carries the administrator role.
func (p *Perfil) IsAdmin() bool {
	return p != nil && slices.Contains(p.Roles, AdminRole)
}

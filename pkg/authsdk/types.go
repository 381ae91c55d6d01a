package authsdk

import "encoding/json"

// Profile types returned in Perfil.Typ.
const (
	TypeEmpresa = "EMPRESA"
	TypeCliente = "CLIENTE"
)

// AdminRole grants every permission.
const AdminRole = "administrador"

// WildcardPermission grants every permission.
const WildcardPermission = "*"

// LoginResponse is the backend reply to /auth/login and /auth/login-email.
type LoginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	Usuario      json.RawMessage `json:"usuario"`
}

// TokenPair is the backend reply to /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshRequest is the body sent to /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Perfil describes the owner of a token.
type Perfil struct {
	Sub      string   `json:"sub"`
	Username *string  `json:"username"`
	Roles    []string `json:"roles"`
	Typ      string   `json:"typ"`
	Iat      int64    `json:"iat,omitempty"`
	Exp      int64    `json:"exp,omitempty"`
}

// PerfilResponse wraps Perfil as the backend returns it.
type PerfilResponse struct {
	Perfil Perfil `json:"perfil"`
}

// PermisosResponse lists the effective permissions of a token.
type PermisosResponse struct {
	Permisos []string `json:"permisos"`
}

// HealthResponse is served by the gateway probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds readiness results per dependency.
type HealthChecks struct {
	Backend string `json:"backend"`
	Cache   string `json:"cache"`
}

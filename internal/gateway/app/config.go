package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
)

type Config struct {
	BackendURL  string // Resolved from INTERNAL_BACKEND_URL, BACKEND_URL, NEXT_PUBLIC_BACKEND_URL (first set wins)
	GraphQLURL  string // Resolved GraphQL target, see resolveGraphQL
	SecretKey   string // X_SECRET_KEY, else NEXT_PUBLIC_X_SECRET_KEY
	FrontendURL string // UI origin pages are proxied to; empty answers 404 for pages

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	UpstreamTimeout             time.Duration // Whole backend exchange (default: 30s)
	UpstreamMaxIdleConnsPerHost int           // Keep-alive connections per backend host (default: 32)
	UpstreamIdleConnTimeout     time.Duration // (default: 90s)

	EdgeProfileTimeout         time.Duration // Profile fetch in the edge gate (default: 5s)
	RedirectAuthenticatedLogin bool          // Send authenticated /login visits to /panel (default: false)

	PermisosCacheTTL time.Duration // (default: 5m)
	RedisAddr        string        // Shared permission cache; empty keeps it in memory
	RedisPassword    string
	RedisDB          int

	DebugRoutes bool // Register /api/debug-* (default: true outside production)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "")
	if env == "" {
		env = getEnvOrDefault("NODE_ENV", "dev")
	}

	cfg := Config{
		BackendURL:  firstEnv("INTERNAL_BACKEND_URL", "BACKEND_URL", "NEXT_PUBLIC_BACKEND_URL"),
		SecretKey:   firstEnv("X_SECRET_KEY", "NEXT_PUBLIC_X_SECRET_KEY"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		UpstreamTimeout:             getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamMaxIdleConnsPerHost: getEnvIntOrDefault("UPSTREAM_MAX_IDLE_CONNS_PER_HOST", 32),
		UpstreamIdleConnTimeout:     getEnvDurationOrDefault("UPSTREAM_IDLE_CONN_TIMEOUT", 90*time.Second),

		EdgeProfileTimeout:         getEnvDurationOrDefault("EDGE_PROFILE_TIMEOUT", 5*time.Second),
		RedirectAuthenticatedLogin: getEnvBoolOrDefault("EDGE_REDIRECT_AUTHENTICATED_LOGIN", false),

		PermisosCacheTTL: getEnvDurationOrDefault("PERMISSIONS_CACHE_TTL", 5*time.Minute),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvIntOrDefault("REDIS_DB", 0),
	}

	cfg.GraphQLURL = resolveGraphQL(cfg.BackendURL)
	cfg.DebugRoutes = getEnvBoolOrDefault("DEBUG_ROUTES", !cfg.IsProduction())

	return cfg
}

// IsProduction reports prod or production, which turns on Secure cookies.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// resolveGraphQL picks the GraphQL target: INTERNAL_GRAPHQL_URL, then
// INTERNAL_BACKEND_URL/graphql, then the public GraphQL variables, then
// backend/graphql.
func resolveGraphQL(backend string) string {
	if u := os.Getenv("INTERNAL_GRAPHQL_URL"); u != "" {
		return u
	}
	if base := os.Getenv("INTERNAL_BACKEND_URL"); base != "" {
		return upstream.Join(base, "/graphql")
	}
	for _, key := range []string{"NEXT_PUBLIC_GRAPHQL_URL", "NEXT_PUBLIC_GRAPHQL_ENDPOINT"} {
		// Relative endpoints point back at this gateway.
		if u := os.Getenv(key); strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			return u
		}
	}
	if backend != "" {
		return upstream.Join(backend, "/graphql")
	}
	return ""
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

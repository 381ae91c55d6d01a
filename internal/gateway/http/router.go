package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mudras/internal/gateway/edge"
	"github.com/aussiebroadwan/mudras/internal/gateway/metrics"
	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/httpx"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
	"github.com/aussiebroadwan/mudras/pkg/slogx"

	_ "github.com/aussiebroadwan/mudras/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Config is the resolved configuration the routes need.
type Config struct {
	BackendURL  string // resolved backend base, empty when unset
	GraphQLURL  string // resolved GraphQL target
	SecretKey   string
	FrontendURL string

	// Secure marks cookies Secure (production).
	Secure bool

	Env          string
	BuildVersion string
	DebugRoutes  bool

	UpstreamTimeout            time.Duration
	PermisosTTL                time.Duration
	EdgeProfileTimeout         time.Duration
	RedirectAuthenticatedLogin bool
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       Config
	startTime time.Time
	logger    *slog.Logger

	pool    *upstream.Pool
	client  *http.Client
	backend *authsdk.Client
	cache   permcache.Cache
	cookies sessionx.Cookies
	gate    *edge.Policy

	// fingerprintKey keys permission cache entries. Shared caches need the
	// same key on every replica, so it is derived from the secret.
	fingerprintKey []byte
}

func NewRouter(
	cfg Config,
	pool *upstream.Pool,
	cache permcache.Cache,
	logger *slog.Logger,
) *Router {
	client := pool.Client(cfg.UpstreamTimeout)

	r := &Router{
		Mux:            http.NewServeMux(),
		cfg:            cfg,
		startTime:      time.Now(),
		logger:         logger,
		pool:           pool,
		client:         client,
		backend:        authsdk.NewClient(cfg.BackendURL, client, cfg.SecretKey),
		cache:          cache,
		cookies:        sessionx.Cookies{Secure: cfg.Secure},
		fingerprintKey: fingerprintKey(cfg.SecretKey),
	}

	r.gate = &edge.Policy{
		ProfileTimeout:             cfg.EdgeProfileTimeout,
		RedirectAuthenticatedLogin: cfg.RedirectAuthenticatedLogin,
	}
	if r.backend.Configured() {
		r.gate.Profiles = r.backend
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.gate.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPassthrough()
	r.registerSystem()
	if r.cfg.DebugRoutes {
		r.registerDebug()
	}
	r.registerPages()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mudras Gateway API
//	@version		0.1.0
//	@description	Session gateway in front of the Mudras back-office UI. Exchanges credentials for
//	@description	httpOnly session cookies and forwards REST and GraphQL calls to the backend with
//	@description	the bearer token the browser cannot read.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						mudras_token
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{Backend: r.backend, Cookies: r.cookies}
	loginCliente := &LoginHandler{Backend: r.backend, Cookies: r.cookies, Customer: true}

	// Credential exchange - strict rate limit by IP + submitted identity
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username", "email", "usuario"),
			r.requireBackend(),
		),
	)
	r.Mux.Handle("POST /api/auth/login-cliente",
		httpx.Chain(loginCliente,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email", "username"),
			r.requireBackend(),
		),
	)

	// POST /refresh - moderate rate limit by IP
	refresh := &RefreshHandler{Backend: r.backend, Cookies: r.cookies}
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			r.requireBackend(),
		),
	)

	// Logout touches cookies and the permission cache, never the backend
	logout := &LogoutHandler{
		Cookies:        r.cookies,
		Cache:          r.cache,
		FingerprintKey: r.fingerprintKey,
	}
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	perfil := &PerfilHandler{Backend: r.backend}
	r.Mux.Handle("GET /api/auth/perfil",
		httpx.Chain(perfil,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			r.requireBackend(),
			httpx.RequireSession(),
		),
	)

	permisos := &PermisosHandler{
		Backend:        r.backend,
		Cache:          r.cache,
		TTL:            r.cfg.PermisosTTL,
		FingerprintKey: r.fingerprintKey,
	}
	r.Mux.Handle("GET /api/auth/permisos",
		httpx.Chain(permisos,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			r.requireBackend(),
			httpx.RequireSession(),
		),
	)
}

func (r *Router) registerPassthrough() {
	rest := &RestHandler{
		BaseURL: r.cfg.BackendURL,
		Client:  r.client,
		Headers: upstream.HeaderConfig{SecretKey: r.cfg.SecretKey, ForwardCookie: true},
	}

	// Catch-all REST relay - data fetches happen on every page load
	secured := httpx.Chain(rest,
		httpx.RateLimitByIP(httpx.PublicLimit),
		r.requireBackend(),
		httpx.RequireSession(),
	)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		r.Mux.Handle(method+" /api/rest/{path...}", secured)
	}

	// /api/users is the same relay pinned to /users
	users := httpx.Chain(&RestHandler{
		BaseURL: r.cfg.BackendURL,
		Client:  r.client,
		Headers: upstream.HeaderConfig{SecretKey: r.cfg.SecretKey},
		Prefix:  "users",
	},
		httpx.RateLimitByIP(httpx.PublicLimit),
		r.requireBackend(),
		httpx.RequireSession(),
	)
	for _, pattern := range []string{
		"GET /api/users", "POST /api/users", "PUT /api/users", "DELETE /api/users",
		"PUT /api/users/{id}", "DELETE /api/users/{id}",
	} {
		r.Mux.Handle(pattern, users)
	}

	graphql := &GraphQLHandler{
		Target:  r.cfg.GraphQLURL,
		Client:  r.client,
		Headers: upstream.HeaderConfig{SecretKey: r.cfg.SecretKey},
	}
	r.Mux.Handle("POST /api/graphql",
		httpx.Chain(graphql,
			httpx.RateLimitByIP(httpx.PublicLimit),
			r.requireBackend(),
		),
	)
	r.Mux.Handle("GET /api/graphql",
		httpx.Chain(graphql,
			httpx.RateLimitByIP(httpx.PublicLimit),
			r.requireBackend(),
		),
	)
	r.Mux.HandleFunc("OPTIONS /api/graphql", GraphQLPreflight)

	// Anything else under /api is not a page
	r.Mux.HandleFunc("/api/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteText(w, http.StatusNotFound, "Not Found")
	})
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.backend, r.cache),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics",
		httpx.Chain(metrics.Handler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	health := &HealthHandler{
		Backend:    r.backend,
		GraphQLURL: r.cfg.GraphQLURL,
		Proxy:      r.Mux,
	}
	r.Mux.Handle("GET /api/health",
		httpx.Chain(health,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDebug() {
	r.Mux.Handle("GET /api/debug-auth",
		httpx.Chain(http.HandlerFunc(DebugAuth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	env := &DebugEnvHandler{Config: r.cfg, CacheName: r.cache.Name()}
	r.Mux.Handle("GET /api/debug-env",
		httpx.Chain(env,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPages() {
	pages, err := NewPagesHandler(r.cfg.FrontendURL, r.pool)
	if err != nil {
		r.logger.Error("invalid FRONTEND_URL, pages disabled", "err", err)
		pages = &PagesHandler{}
	}
	r.Mux.Handle("/", pages)
}

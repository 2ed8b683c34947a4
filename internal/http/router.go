package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/internal/store"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/waypoint-labs/waypoint/api" // Swagger docs
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminSecret  string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	UserService        *service.UserService
	TokenService       *service.TokenService
	DestinationService *service.DestinationService
}

func NewRouter(
	adminSecret, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		adminSecret:  adminSecret,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerAuth()
	r.registerDestinations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Waypoint API
//	@version		0.1.0
//	@description	A travel destination service with user accounts, role-gated administration and
//	@description	JWT bearer-token authentication. Tokens are signed with HS256 and verified
//	@description	either inline per request or via the dedicated verification endpoint.
//
//	@contact.name				Waypoint Labs
//	@contact.url				https://github.com/waypoint-labs/waypoint
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	registerHandler := &RegisterHandler{
		UserService: r.UserService,
		AdminSecret: r.adminSecret,
	}

	// POST /register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /profile - lenient rate limit by user
	profileHandler := &ProfileHandler{UserService: r.UserService}
	r.Mux.Handle("GET /profile",
		httpx.Chain(profileHandler,
			Authn(r.TokenService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	// POST /auth/verify - unauthenticated by design: other services call it
	// with the token under test in the body, not in a header
	verifyHandler := &VerifyHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /auth/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/roles - moderate rate limit by user
	rolesHandler := &RolesHandler{UserService: r.UserService}
	r.Mux.Handle("GET /auth/roles",
		httpx.Chain(rolesHandler,
			Authn(r.TokenService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDestinations() {
	h := &DestinationsHandler{DestinationService: r.DestinationService}

	// GET /destinations - any authenticated user - lenient rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		Authn(r.TokenService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// POST /destinations - Admin only - moderate rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		Authn(r.TokenService),
		httpx.RequireRole("Admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// DELETE /destinations/{id} - Admin only - moderate rate limit
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		Authn(r.TokenService),
		httpx.RequireRole("Admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /destinations", securedList)
	r.Mux.Handle("POST /destinations", securedCreate)
	r.Mux.Handle("DELETE /destinations/{id}", securedDelete)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Prometheus metrics, unauthenticated on the assumption the service
	// runs behind a private network boundary
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}

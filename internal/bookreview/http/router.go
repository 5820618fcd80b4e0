package http

//go:generate swag init -g router.go -o ../../../api/bookreview --outputTypes go --parseDependency

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"

	_ "github.com/aussiebroadwan/bookreview/api/bookreview" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits are the per-route rate limiting profiles.
type RateLimits struct {
	Strict   httpx.RateLimitConfig // credentials and account mail
	Moderate httpx.RateLimitConfig // token refresh and admin writes
	Lenient  httpx.RateLimitConfig // everything else

	// TrustedProxies may set X-Forwarded-For and X-Real-IP.
	TrustedProxies httpx.TrustedProxies
}

func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	gate         *session.Gate
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics
	limits       RateLimits

	db    Pinger
	cache Pinger

	Accounts         *service.AccountService
	Sessions         *session.Authority
	Revocations      RevocationInspector
	UserService      *service.UserService
	BookService      *service.BookService
	ReviewService    *service.ReviewService
	TagService       *service.TagService
	BootstrapService *service.BootstrapService

	// HomeURL is linked from the email verification page.
	HomeURL string
}

func NewRouter(
	gate *session.Gate,
	buildVersion string,
	db, cache Pinger,
	m *metrics.Metrics,
	limits RateLimits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		gate:         gate,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      m,
		limits:       limits,
		db:           db,
		cache:        cache,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBooks()
	r.registerReviews()
	r.registerTags()
	r.registerUsers()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Book Review API
//	@version		0.1.0
//	@description	Book catalogue with reviews and tags. Users sign up, verify their email and log in for a
//	@description	short-lived access token and a single-use refresh token. Logging out or changing the
//	@description	password revokes tokens before they expire.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/bookreview
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
//	@description				JWT access token, or the refresh token for /api/v1/auth/refresh. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// reader guards routes open to every signed-in role.
func (r *Router) reader(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		requireAccess(r.gate),
		requireRole(domain.ReaderRoles...),
		httpx.RateLimitByUser(limit, r.limits.TrustedProxies),
	)
}

func (r *Router) restricted(h http.HandlerFunc, limit httpx.RateLimitConfig, roles ...domain.Role) http.Handler {
	return httpx.Chain(h,
		requireAccess(r.gate),
		requireRole(roles...),
		httpx.RateLimitByUser(limit, r.limits.TrustedProxies),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Accounts:    r.Accounts,
		Sessions:    r.Sessions,
		Revocations: r.Revocations,
		HomeURL:     r.HomeURL,
	}

	// Public credential and mail endpoints - strict limit by IP
	r.Mux.Handle("POST /api/v1/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup), httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies)))
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIPAndJSONField(r.limits.Strict, r.limits.TrustedProxies, "email")))
	r.Mux.Handle("POST /api/v1/auth/verify/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResendVerification), httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies)))
	r.Mux.Handle("POST /api/v1/auth/password-reset",
		httpx.Chain(http.HandlerFunc(h.HandlePasswordReset), httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies)))
	r.Mux.Handle("POST /api/v1/auth/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirmPasswordReset), httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies)))

	// Emailed links - moderate limit by IP
	r.Mux.Handle("GET /api/v1/auth/verify/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail), httpx.RateLimitByIP(r.limits.Moderate, r.limits.TrustedProxies)))
	r.Mux.Handle("GET /api/v1/auth/password-reset/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleCheckResetToken), httpx.RateLimitByIP(r.limits.Moderate, r.limits.TrustedProxies)))

	// Refresh takes the refresh token, never the access token
	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			requireRefresh(r.gate),
			httpx.RateLimitByUser(r.limits.Moderate, r.limits.TrustedProxies),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/logout", r.reader(h.HandleLogout, r.limits.Moderate))
	r.Mux.Handle("POST /api/v1/auth/revoke-all", r.reader(h.HandleRevokeAll, r.limits.Moderate))
	r.Mux.Handle("GET /api/v1/auth/me", r.reader(h.HandleMe, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/auth/sessions", r.reader(h.HandleSessions, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/auth/revoked",
		r.restricted(h.HandleListRevoked, r.limits.Moderate, domain.RoleSuperAdmin))
}

func (r *Router) registerBooks() {
	h := &BooksHandler{Books: r.BookService}

	r.Mux.Handle("GET /api/v1/books", r.reader(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("POST /api/v1/books", r.reader(h.HandleCreate, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/books/user/{user_id}", r.reader(h.HandleListByUser, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/books/{id}", r.reader(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("PATCH /api/v1/books/{id}", r.reader(h.HandleUpdate, r.limits.Lenient))
	r.Mux.Handle("DELETE /api/v1/books/{id}", r.reader(h.HandleDelete, r.limits.Lenient))
}

func (r *Router) registerReviews() {
	h := &ReviewsHandler{Reviews: r.ReviewService}

	r.Mux.Handle("POST /api/v1/reviews/book/{book_id}", r.reader(h.HandleCreate, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/reviews/book/{book_id}", r.reader(h.HandleListByBook, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/reviews/{id}", r.reader(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("DELETE /api/v1/reviews/{id}", r.reader(h.HandleDelete, r.limits.Lenient))
}

func (r *Router) registerTags() {
	h := &TagsHandler{Tags: r.TagService}

	r.Mux.Handle("GET /api/v1/tags", r.reader(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("GET /api/v1/tags/{id}", r.reader(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("POST /api/v1/tags/book/{book_id}", r.reader(h.HandleTagBook, r.limits.Lenient))

	// Tag vocabulary is curated by admins
	r.Mux.Handle("POST /api/v1/tags", r.restricted(h.HandleCreate, r.limits.Moderate, domain.AdminRoles...))
	r.Mux.Handle("PUT /api/v1/tags/{id}", r.restricted(h.HandleRename, r.limits.Moderate, domain.AdminRoles...))
	r.Mux.Handle("DELETE /api/v1/tags/{id}", r.restricted(h.HandleDelete, r.limits.Moderate, domain.AdminRoles...))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	r.Mux.Handle("GET /api/v1/users", r.restricted(h.HandleList, r.limits.Moderate, domain.AdminRoles...))
	r.Mux.Handle("GET /api/v1/users/{id}", r.restricted(h.HandleGet, r.limits.Moderate, domain.AdminRoles...))
	r.Mux.Handle("PATCH /api/v1/users/{id}", r.restricted(h.HandleUpdate, r.limits.Moderate, domain.AdminRoles...))
	r.Mux.Handle("DELETE /api/v1/users/{id}",
		r.restricted(h.HandleDelete, r.limits.Moderate, domain.RoleSuperAdmin))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /api/v1/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient, r.limits.TrustedProxies),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db, r.cache),
			httpx.RateLimitByIP(r.limits.Lenient, r.limits.TrustedProxies),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}

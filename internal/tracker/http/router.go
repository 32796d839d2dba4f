package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/pkg/httpx"
	"github.com/clockin-dev/clockin/pkg/jwtx"
	"github.com/clockin-dev/clockin/pkg/slogx"

	_ "github.com/clockin-dev/clockin/api/tracker" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	TrackerService *service.TrackerService
	ReportService  *service.ReportService
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
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
	r.registerAuth()
	r.registerSessions()
	r.registerActivity()
	r.registerUsers()
	r.registerReports()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ClockIn Time Tracking API
//	@version		0.1.0
//	@description	Employee time-tracking service. Sessions record check-in to
//	@description	check-out; minute counters for active, idle and paused time
//	@description	are derived from client heartbeats and idle signals.
//
//	@contact.name				ClockIn Team
//	@contact.url				https://github.com/clockin-dev/clockin
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

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{
		TrackerService: r.TrackerService,
		ReportService:  r.ReportService,
	}

	// State transitions - moderate rate limit by user
	securedCheckIn := httpx.Chain(http.HandlerFunc(h.HandleCheckIn),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedCheckOut := httpx.Chain(http.HandlerFunc(h.HandleCheckOut),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedPause := httpx.Chain(http.HandlerFunc(h.HandlePause),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedResume := httpx.Chain(http.HandlerFunc(h.HandleResume),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// GET /sessions - own history, lenient rate limit by user
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/sessions/check-in", securedCheckIn)
	r.Mux.Handle("POST /v1/sessions/check-out", securedCheckOut)
	r.Mux.Handle("POST /v1/sessions/pause", securedPause)
	r.Mux.Handle("POST /v1/sessions/resume", securedResume)
	r.Mux.Handle("GET /v1/sessions", securedList)
}

func (r *Router) registerActivity() {
	h := &ActivityHandler{
		TrackerService: r.TrackerService,
		ReportService:  r.ReportService,
	}

	// POST /activity - heartbeat rate limit by user (one ping per
	// interaction burst, well above the crediting tolerance)
	securedPost := httpx.Chain(http.HandlerFunc(h.HandlePost),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.HeartbeatLimit),
	)

	// GET /activity - own recent log entries, lenient rate limit
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/activity", securedPost)
	r.Mux.Handle("GET /v1/activity", securedGet)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /v1/users - Create user (admin only) - moderate rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// GET /v1/users - List employees (admin only) - moderate rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/users", securedCreate)
	r.Mux.Handle("GET /v1/users", securedList)
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	// GET /reports/me - own summary, any authenticated user
	securedMe := httpx.Chain(http.HandlerFunc(h.HandleMe),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// Fleet-wide views are admin only
	securedStats := httpx.Chain(http.HandlerFunc(h.HandleStats),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("admin"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedDaily := httpx.Chain(http.HandlerFunc(h.HandleDaily),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("admin"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedExport := httpx.Chain(http.HandlerFunc(h.HandleExport),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("admin"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/reports/me", securedMe)
	r.Mux.Handle("GET /v1/reports/stats", securedStats)
	r.Mux.Handle("GET /v1/reports/daily", securedDaily)
	r.Mux.Handle("GET /v1/reports/export", securedExport)
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
}

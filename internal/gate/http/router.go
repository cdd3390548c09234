package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/jwtx"
	"github.com/nightowlmedia/doorman/pkg/slogx"

	_ "github.com/nightowlmedia/doorman/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	sessionTTL   time.Duration

	store         store.Store
	AuthService   *service.AuthService
	InviteService *service.InviteService
	TicketService *service.TicketService
	UserService   *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	sessionTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		sessionTTL:   sessionTTL,
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
	r.registerUserInfo()
	r.registerInvites()
	r.registerTickets()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Doorman Access Service API
//	@version		0.1.0
//	@description	Invite-gated access control for a private media server. Users register by redeeming single-use invite codes, submit content request tickets, and admins manage users, invites and tickets.
//	@description
//	@description				Authenticated endpoints expect an Ed25519-signed JWT whose session can be revoked server-side at any time.
//
//	@contact.name				Night Owl Media
//	@contact.url				https://github.com/nightowlmedia/doorman
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
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the per-route authentication chain. The AuthService doubles
// as the session liveness check so logout revokes tokens immediately.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, r.AuthService)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP + username to slow brute force
	loginHandler := &LoginHandler{AuthService: r.AuthService, SessionTTL: r.sessionTTL}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register - strict rate limit, invite codes are guessable in principle
	registerHandler := &RegisterHandler{AuthService: r.AuthService, SessionTTL: r.sessionTTL}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - authenticated, moderate
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUserInfo() {
	userInfoHandler := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(userInfoHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerInvites() {
	inviteCreateHandler := &InviteCreateHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites",
		httpx.Chain(inviteCreateHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	inviteListHandler := &InviteListHandler{InviteService: r.InviteService}
	r.Mux.Handle("GET /v1/invites",
		httpx.Chain(inviteListHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /invites/{code} is deliberately unauthenticated so registration
	// pages can validate a code, but strict-limited by IP against
	// enumeration.
	inviteLookupHandler := &InviteLookupHandler{InviteService: r.InviteService}
	r.Mux.Handle("GET /v1/invites/{code}",
		httpx.Chain(inviteLookupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTickets() {
	ticketCreateHandler := &TicketCreateHandler{TicketService: r.TicketService}
	r.Mux.Handle("POST /v1/tickets",
		httpx.Chain(ticketCreateHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	ticketListHandler := &TicketListHandler{TicketService: r.TicketService}
	r.Mux.Handle("GET /v1/tickets",
		httpx.Chain(ticketListHandler,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	ticketRespondHandler := &TicketRespondHandler{TicketService: r.TicketService}
	r.Mux.Handle("POST /v1/tickets/{id}/respond",
		httpx.Chain(ticketRespondHandler,
			r.authn(),
			httpx.RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	adminTicketListHandler := &AdminTicketListHandler{TicketService: r.TicketService}
	r.Mux.Handle("GET /v1/admin/tickets",
		httpx.Chain(adminTicketListHandler,
			r.authn(),
			httpx.RequireAdmin(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	userListHandler := &UserListHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/admin/users",
		httpx.Chain(userListHandler,
			r.authn(),
			httpx.RequireAdmin(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	userPromoteHandler := &UserPromoteHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/admin/users/{id}/promote",
		httpx.Chain(userPromoteHandler,
			r.authn(),
			httpx.RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

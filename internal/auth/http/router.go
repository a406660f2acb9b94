package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"

	_ "github.com/gatekeephq/gatekeep/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	cookieDomain string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SessionService   *service.SessionService
	AuthorizeService *service.AuthorizeService
	AccountService   *service.AccountService
	InviteService    *service.InviteService
	NodeService      *service.NodeService
}

func NewRouter(
	buildVersion, cookieDomain, corsOrigin string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		cookieDomain: cookieDomain,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuthentication()
	r.registerUsers()
	r.registerInvites()
	r.registerNodes()
	r.registerPermissions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeep Authentication Service API
//	@version		0.1.0
//	@description	Self-hosted authentication and authorization backend: signed session
//	@description	tokens, a closed permission catalog, and invite-gated signups.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						authToken
//	@description				Signed session token set by POST /v2/authentication.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// gated wraps a handler with the authorization gate for the given
// permission set.
func (r *Router) gated(h http.Handler, required []int) http.Handler {
	return httpx.Chain(h, requirePermissions(r.AuthorizeService, required))
}

func (r *Router) registerAuthentication() {
	h := &AuthenticationHandler{
		Sessions:     r.SessionService,
		Gate:         r.AuthorizeService,
		CookieDomain: r.cookieDomain,
	}

	r.Mux.Handle("POST /v2/authentication", http.HandlerFunc(h.HandlePost))
	r.Mux.Handle("GET /v2/authentication", r.gated(http.HandlerFunc(h.HandleGet), nil))
	r.Mux.Handle("DELETE /v2/authentication", http.HandlerFunc(h.HandleDelete))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Accounts: r.AccountService}

	// Signup is the one unauthenticated write in the system.
	r.Mux.Handle("POST /v2/users", http.HandlerFunc(h.HandleSignup))

	r.Mux.Handle("GET /v2/users", r.gated(http.HandlerFunc(h.HandleList), permsModifyUsers))
	r.Mux.Handle("GET /v2/users/{email}", r.gated(http.HandlerFunc(h.HandleGet), permsModifyUsers))
	r.Mux.Handle("PATCH /v2/users/{email}", r.gated(http.HandlerFunc(h.HandleUpdate), permsModifyUsers))
	r.Mux.Handle("DELETE /v2/users/{email}", r.gated(http.HandlerFunc(h.HandleDelete), permsDeleteUsers))

	// Metadata is self-service; any authenticated account may reach
	// the route, the handler enforces self-only.
	r.Mux.Handle("PUT /v2/users/{email}/metadata", r.gated(http.HandlerFunc(h.HandleMetadata), nil))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{Invites: r.InviteService}

	r.Mux.Handle("POST /v2/invites", r.gated(http.HandlerFunc(h.HandleCreate), permsInvite))
	r.Mux.Handle("GET /v2/invites", r.gated(http.HandlerFunc(h.HandleList), permsInvite))
	r.Mux.Handle("PATCH /v2/invites/{email}", r.gated(http.HandlerFunc(h.HandleUpdate), permsModifyInvite))
	r.Mux.Handle("DELETE /v2/invites/{email}", r.gated(http.HandlerFunc(h.HandleDelete), permsDeleteInvite))
}

func (r *Router) registerNodes() {
	h := &NodesHandler{Nodes: r.NodeService}

	// Reads are open to any authenticated account; writes follow the
	// node permission bits.
	r.Mux.Handle("GET /v2/nodes", r.gated(http.HandlerFunc(h.HandleList), nil))
	r.Mux.Handle("GET /v2/nodes/{id}", r.gated(http.HandlerFunc(h.HandleGet), nil))
	r.Mux.Handle("POST /v2/nodes", r.gated(http.HandlerFunc(h.HandleCreate), permsAddNode))
	r.Mux.Handle("PATCH /v2/nodes/{id}", r.gated(http.HandlerFunc(h.HandleUpdate), permsModifyNode))
	r.Mux.Handle("DELETE /v2/nodes/{id}", r.gated(http.HandlerFunc(h.HandleDelete), permsDeleteNode))
}

func (r *Router) registerPermissions() {
	r.Mux.Handle("GET /v2/permissions", r.gated(PermissionsHandler(), nil))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

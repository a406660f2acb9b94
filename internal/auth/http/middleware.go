package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

// SessionCookieName holds the signed session token. HasSessionCookieName
// is a plain readable flag so browser clients can tell whether a session
// exists without being able to read the token itself.
const (
	SessionCookieName    = "authToken"
	HasSessionCookieName = "hasAuthToken"
)

// Permission sets required per operation group. Admins always pass.
var (
	permsInvite       = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermInvite}
	permsModifyInvite = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermModifyInvite}
	permsDeleteInvite = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermDeleteInvite}
	permsModifyUsers  = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermModifyUsers}
	permsDeleteUsers  = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermDeleteUsers}
	permsAddNode      = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermAddNode}
	permsModifyNode   = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermModifyNode}
	permsDeleteNode   = []int{domain.PermSuperAdmin, domain.PermAdmin, domain.PermDeleteNode}
)

// sessionToken pulls the raw token from the session cookie, falling
// back to a bearer Authorization header for non-browser clients.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// requirePermissions runs every request through the authorization gate
// and injects the resolved account into the request context. A nil
// required set means any authenticated active account.
func requirePermissions(gate *service.AuthorizeService, required []int) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			account, err := gate.Authorize(ctx, sessionToken(r), required)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUnauthenticated):
					httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
						Error:            "unauthenticated",
						ErrorDescription: "Authentication required",
					})
				case errors.Is(err, service.ErrForbidden):
					httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
						Error:            "forbidden",
						ErrorDescription: "Missing required permission",
					})
				default:
					slogx.FromContext(ctx).Error("authorization gate failed", "error", err)
					httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
						Error: "server_error",
					})
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(ctx, account)))
		})
	}
}

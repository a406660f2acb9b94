package http

import (
	"net/http"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
)

// PermissionsHandler godoc
//
//	@Summary		Permission catalog
//	@Description	Returns every assignable permission with its code, name, and description.
//	@Description	The super admin code is excluded; it can never be granted.
//	@Tags			Permissions
//	@Produce		json
//	@Success		200	{object}	PermissionsResponse
//	@Security		SessionCookie
//	@Router			/v2/permissions [get].
func PermissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, PermissionsResponse{
			Permissions: domain.AssignablePermissions,
		})
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

type InvitesHandler struct {
	Invites *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Invite an email address
//	@Description	Records an invite with a permission grant. Re-inviting the same address
//	@Description	replaces the earlier grant. Codes outside the assignable catalog are dropped.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InviteRequest	true	"Invite"
//	@Success		201		{object}	InviteResponse
//	@Failure		400		{object}	ErrorResponse	"invalid_request"
//	@Security		SessionCookie
//	@Router			/v2/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := AccountFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
		return
	}

	invite, err := h.Invites.Create(ctx, req.Email, req.Permissions, actor.Email)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create invite", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInviteResponse(invite))
}

// HandleList godoc
//
//	@Summary		List standing invites
//	@Tags			Invites
//	@Produce		json
//	@Success		200	{array}	InviteResponse
//	@Security		SessionCookie
//	@Router			/v2/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invites, err := h.Invites.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invites", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	out := make([]InviteResponse, len(invites))
	for i, inv := range invites {
		out[i] = toInviteResponse(inv)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate godoc
//
//	@Summary		Replace an invite's permission grant
//	@Tags			Invites
//	@Accept			json
//	@Param			email	path	string				true	"Invited email"
//	@Param			request	body	InviteUpdateRequest	true	"New grant"
//	@Success		204		"updated"
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/invites/{email} [patch].
func (h *InvitesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req InviteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if err := h.Invites.UpdatePermissions(ctx, r.PathValue("email"), req.Permissions); err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to update invite", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Revoke an invite
//	@Tags			Invites
//	@Param			email	path	string	true	"Invited email"
//	@Success		204		"revoked"
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/invites/{email} [delete].
func (h *InvitesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Invites.Delete(ctx, r.PathValue("email")); err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to delete invite", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

type UsersHandler struct {
	Accounts *service.AccountService
}

// HandleSignup godoc
//
//	@Summary		Register an account
//	@Description	Creates an account. The first account in an empty store becomes the super admin;
//	@Description	later signups require a standing invite unless the signup policy is open.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"New account"
//	@Success		201		{object}	AccountResponse
//	@Failure		400		{object}	ErrorResponse	"invalid_request"
//	@Failure		403		{object}	ErrorResponse	"signup_closed"
//	@Failure		409		{object}	ErrorResponse	"email_taken"
//	@Failure		500		{object}	ErrorResponse	"server_error"
//	@Router			/v2/users [post].
func (h *UsersHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignupRequest
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

	account, err := h.Accounts.Signup(ctx, service.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Metadata: req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupClosed):
			httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
				Error:            "signup_closed",
				ErrorDescription: "Signups require an invite",
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error:            "email_taken",
				ErrorDescription: "An account with that email already exists",
			})
		default:
			log.Error("signup failed", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "server_error",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(account))
}

// HandleList godoc
//
//	@Summary		List accounts
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		AccountResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/v2/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.Accounts.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accounts", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Fetch one account
//	@Tags			Users
//	@Produce		json
//	@Param			email	path		string	true	"Account email"
//	@Success		200		{object}	AccountResponse
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/users/{email} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.Accounts.Get(ctx, r.PathValue("email"))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to fetch account", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleUpdate godoc
//
//	@Summary		Update an account
//	@Description	Partial update. Empty password keeps the current one; omitting permissions
//	@Description	keeps the current grant while an explicit empty array clears it. Only admins
//	@Description	may change permissions; non-admin callers have the field ignored.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			email	path		string					true	"Account email"
//	@Param			request	body		UpdateAccountRequest	true	"Fields to change"
//	@Success		200		{object}	AccountResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/users/{email} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := AccountFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req UpdateAccountRequest
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

	account, err := h.Accounts.Update(ctx, r.PathValue("email"), service.UpdateParams{
		Password:             req.Password,
		Active:               req.Active,
		Pending:              req.Pending,
		Permissions:          req.Permissions,
		CanModifyPermissions: actor.IsAdmin(),
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		log.Error("failed to update account", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleMetadata godoc
//
//	@Summary		Replace own metadata
//	@Description	Self-service only: the path email must match the authenticated account.
//	@Tags			Users
//	@Accept			json
//	@Param			email	path	string			true	"Account email"
//	@Param			request	body	MetadataRequest	true	"Metadata blob"
//	@Success		204		"updated"
//	@Failure		403		{object}	ErrorResponse	"forbidden"
//	@Security		SessionCookie
//	@Router			/v2/users/{email}/metadata [put].
func (h *UsersHandler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := AccountFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}
	if actor.Email != r.PathValue("email") {
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: "Metadata can only be changed on your own account",
		})
		return
	}

	var req MetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if err := h.Accounts.UpdateMetadata(ctx, actor.Email, req.Metadata); err != nil {
		slogx.FromContext(ctx).Error("failed to update metadata", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete an account
//	@Tags			Users
//	@Param			email	path	string	true	"Account email"
//	@Success		204		"deleted"
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/users/{email} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Accounts.Delete(ctx, r.PathValue("email")); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to delete account", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

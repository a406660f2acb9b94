package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

type AuthenticationHandler struct {
	Sessions *service.SessionService
	Gate     *service.AuthorizeService

	// CookieDomain scopes the session cookies; empty means host-only.
	CookieDomain string
}

// HandlePost godoc
//
//	@Summary		Sign in
//	@Description	Verifies an email/password pair and sets the session cookies.
//	@Description	The authToken cookie is HttpOnly; hasAuthToken mirrors its presence for scripts.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	SessionResponse	"account, expires_at"
//	@Failure		400		{object}	ErrorResponse	"invalid_request"
//	@Failure		401		{object}	ErrorResponse	"bad_credentials"
//	@Failure		403		{object}	ErrorResponse	"account_inactive"
//	@Failure		500		{object}	ErrorResponse	"server_error"
//	@Router			/v2/authentication [post].
func (h *AuthenticationHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
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

	token, expiresAt, err := h.Sessions.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:            "bad_credentials",
				ErrorDescription: "Email or password is incorrect",
			})
		case errors.Is(err, service.ErrAccountInactive):
			httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
				Error:            "account_inactive",
				ErrorDescription: "This account has been deactivated",
			})
		default:
			log.Error("login failed", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "server_error",
			})
		}
		return
	}

	account, err := h.Gate.Authorize(ctx, token, nil)
	if err != nil {
		log.Error("failed to resolve freshly issued session", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "server_error",
		})
		return
	}

	h.setSessionCookies(w, token, expiresAt)
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		Account:   toAccountResponse(account),
		ExpiresAt: expiresAt,
	})
}

// HandleGet godoc
//
//	@Summary		Session probe
//	@Description	Returns the account behind the current session token, or 401.
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	AccountResponse
//	@Failure		401	{object}	ErrorResponse	"unauthenticated"
//	@Router			/v2/authentication [get].
func (h *AuthenticationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleDelete godoc
//
//	@Summary		Sign out
//	@Description	Clears the session cookies. The token itself stays valid until expiry.
//	@Tags			Authentication
//	@Success		204	"signed out"
//	@Router			/v2/authentication [delete].
func (h *AuthenticationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthenticationHandler) setSessionCookies(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Script-readable presence flag; carries no secret.
	http.SetCookie(w, &http.Cookie{
		Name:     HasSessionCookieName,
		Value:    "true",
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthenticationHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookieName, HasSessionCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			Domain: h.CookieDomain,
			MaxAge: -1,
		})
	}
}

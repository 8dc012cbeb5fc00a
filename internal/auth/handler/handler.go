// Package handler exposes registration, the two login doors, and session
// endpoints over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	"github.com/PeteLJ/PetHeaven/internal/platform/middleware"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
	"github.com/PeteLJ/PetHeaven/pkg/platform/httputil"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// Handler serves the auth endpoints.
type Handler struct {
	manager *auth.Manager
	tokens  *auth.TokenIssuer
	logger  *slog.Logger
}

// New constructs an auth handler with its dependencies.
func New(manager *auth.Manager, tokens *auth.TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, tokens: tokens, logger: logger}
}

// Register mounts the public auth endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/staff/login", h.HandleStaffLogin)
}

// RegisterProtected mounts the endpoints that need a valid token. Mount
// behind RequireAuth.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/logout", h.HandleLogout)
	r.Put("/auth/supporter", h.HandleSupporter)
}

// HandleRegister handles POST /auth/register. Registration never logs the
// account in; the client logs in separately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	account, err := h.manager.Register(ctx, req.Name, req.Email, req.Password, req.Supporter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromAccount(account))
}

// HandleLogin handles POST /auth/login. A success replaces any active user
// session and returns a bearer token scoped to the user role.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	account, err := h.manager.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", reqID,
			"email", req.Email,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.tokens.Issue(auth.UserPrincipal{Account: account})
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  FromAccount(account),
	})
}

// HandleStaffLogin handles POST /auth/staff/login. A success makes staff the
// live principal, replacing any active user session; the roles never hold
// the session together.
func (h *Handler) HandleStaffLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StaffLoginRequest](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	if err := h.manager.LoginStaff(ctx, req.Username, req.Password); err != nil {
		h.logger.WarnContext(ctx, "staff login failed",
			"request_id", reqID,
			"username", req.Username,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.tokens.Issue(auth.StaffPrincipal{Username: req.Username})
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StaffLoginResponse{Token: token})
}

// HandleLogout handles POST /auth/logout. The slot cleared matches the role
// of the presented token.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	h.manager.Logout(auth.IsStaff(principal))
	w.WriteHeader(http.StatusNoContent)
}

// HandleSupporter handles PUT /auth/supporter: the caller toggles their own
// supporter flag.
func (h *Handler) HandleSupporter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)

	account, ok := auth.UserOf(middleware.GetPrincipal(ctx))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "user session required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[SupporterRequest](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	updated, err := h.manager.UpdateSupporterStatus(ctx, account.ID, req.Supporter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAccount(updated))
}

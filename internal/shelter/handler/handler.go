// Package handler wires the request lifecycle endpoints to the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	"github.com/PeteLJ/PetHeaven/internal/platform/middleware"
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/internal/shelter/service"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
	"github.com/PeteLJ/PetHeaven/pkg/platform/httputil"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// Service defines the lifecycle operations the handler exposes.
type Service interface {
	Submit(ctx context.Context, p auth.Principal, sub service.Submission) (models.Request, error)
	ListForUser(ctx context.Context, p auth.Principal) ([]models.Request, error)
	StaffQueues(ctx context.Context, p auth.Principal) (service.Queues, error)
	GetForStaff(ctx context.Context, p auth.Principal, id domain.RequestID) (models.Request, error)
	Decide(ctx context.Context, p auth.Principal, id domain.RequestID, decision models.Decision) (models.Request, error)
	ResolvePayment(ctx context.Context, p auth.Principal, id domain.RequestID, card service.CardDetails) (models.Request, error)
	ConfirmCollection(ctx context.Context, p auth.Principal, id domain.RequestID) (models.Request, error)
	Delete(ctx context.Context, p auth.Principal, id domain.RequestID) error
}

// Handler serves the user and staff request endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a request handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the user-facing request endpoints. Mount behind
// RequireAuth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/requests", h.HandleSubmit)
	r.Get("/requests", h.HandleList)
	r.Delete("/requests/{id}", h.HandleDelete)
	r.Post("/requests/{id}/payment", h.HandlePayment)
	r.Post("/requests/{id}/collection", h.HandleCollection)
}

// RegisterStaff mounts the staff review endpoints. Mount behind RequireAuth
// and RequireStaff.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Get("/staff/requests", h.HandleQueues)
	r.Get("/staff/requests/{id}", h.HandleDetail)
	r.Post("/staff/requests/{id}/decision", h.HandleDecision)
}

func requestID(r *http.Request) (domain.RequestID, error) {
	id, err := domain.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid request ID")
	}
	return id, nil
}

// HandleSubmit handles POST /requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)
	principal := middleware.GetPrincipal(ctx)

	sub, ok := httputil.DecodeAndPrepare[service.Submission](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	created, err := h.service.Submit(ctx, principal, *sub)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRequest(created))
}

// HandleList handles GET /requests: the records owned by the caller.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)

	visible, err := h.service.ListForUser(ctx, principal)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequests(visible))
}

// HandleDelete handles DELETE /requests/{id}. The service routes it to a
// cancel or a record removal based on the current state.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)

	id, err := requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(ctx, principal, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePayment handles POST /requests/{id}/payment.
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)
	principal := middleware.GetPrincipal(ctx)

	id, err := requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	card, ok := httputil.DecodeAndPrepare[service.CardDetails](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	updated, err := h.service.ResolvePayment(ctx, principal, id, *card)
	if err != nil {
		h.logger.WarnContext(ctx, "payment resolution failed",
			"request_id", reqID,
			"id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(updated))
}

// HandleCollection handles POST /requests/{id}/collection.
func (h *Handler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)

	id, err := requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	updated, err := h.service.ConfirmCollection(ctx, principal, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(updated))
}

// HandleQueues handles GET /staff/requests.
func (h *Handler) HandleQueues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)

	q, err := h.service.StaffQueues(ctx, principal)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQueues(q))
}

// HandleDetail handles GET /staff/requests/{id}: the full record, every
// submitted field.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)

	id, err := requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.service.GetForStaff(ctx, principal, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(record))
}

// HandleDecision handles POST /staff/requests/{id}/decision.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)
	principal := middleware.GetPrincipal(ctx)

	id, err := requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	updated, err := h.service.Decide(ctx, principal, id, req.ParsedDecision())
	if err != nil {
		h.logger.WarnContext(ctx, "decision failed",
			"request_id", reqID,
			"id", id,
			"decision", req.Decision,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(updated))
}

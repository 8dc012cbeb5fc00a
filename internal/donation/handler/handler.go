// Package handler exposes the donation endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PeteLJ/PetHeaven/internal/donation"
	"github.com/PeteLJ/PetHeaven/pkg/platform/httputil"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// Handler serves the donation endpoint. No auth: anyone may donate.
type Handler struct {
	service *donation.Service
	logger  *slog.Logger
}

func New(service *donation.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the donation endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/donations", h.HandleDonate)
}

// HandleDonate handles POST /donations.
func (h *Handler) HandleDonate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestcontext.RequestID(ctx)

	form, ok := httputil.DecodeAndPrepare[donation.Donation](w, r, h.logger, ctx, reqID)
	if !ok {
		return
	}

	receipt, err := h.service.Donate(ctx, *form)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, receipt)
}

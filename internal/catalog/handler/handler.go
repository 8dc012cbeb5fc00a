// Package handler serves the public pet listing.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PeteLJ/PetHeaven/internal/catalog"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
	"github.com/PeteLJ/PetHeaven/pkg/platform/httputil"
)

// Handler serves the catalog endpoints. No auth: browsing is public.
type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Register mounts the catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/pets", h.HandleList)
}

// ListResponse is the HTTP response for GET /pets.
type ListResponse struct {
	Pets  []catalog.Pet `json:"pets"`
	Total int           `json:"total"`
}

// HandleList handles GET /pets with optional type, hdb, minFee and maxFee
// query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.Filter{Fees: catalog.DefaultFeeRange()}

	switch t := q.Get("type"); t {
	case "", "all", "cat", "dog":
		filter.Type = t
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "type must be all, cat or dog"))
		return
	}
	filter.HDBOnly = q.Get("hdb") == "hdb-only"

	// The two ends apply in the slider's order: min first, then max, so a
	// max below min drags min down just like the page.
	if v := q.Get("minFee"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "minFee must be an integer"))
			return
		}
		filter.Fees = filter.Fees.SetMin(n)
	}
	if v := q.Get("maxFee"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "maxFee must be an integer"))
			return
		}
		filter.Fees = filter.Fees.SetMax(n)
	}

	all := catalog.Available()
	matched := filter.Apply(all)
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Pets: matched, Total: len(all)})
}

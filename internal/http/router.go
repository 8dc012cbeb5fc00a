// Package httpapi assembles the application router: middleware chain, the
// public surface, and the token-gated user and staff subtrees.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "github.com/PeteLJ/PetHeaven/internal/auth/handler"
	cataloghandler "github.com/PeteLJ/PetHeaven/internal/catalog/handler"
	donationhandler "github.com/PeteLJ/PetHeaven/internal/donation/handler"
	"github.com/PeteLJ/PetHeaven/internal/platform/metrics"
	"github.com/PeteLJ/PetHeaven/internal/platform/middleware"
	shelterhandler "github.com/PeteLJ/PetHeaven/internal/shelter/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Auth     *authhandler.Handler
	Catalog  *cataloghandler.Handler
	Donation *donationhandler.Handler
	Shelter  *shelterhandler.Handler

	Validator middleware.PrincipalValidator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Health    http.HandlerFunc
}

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))
	r.Use(middleware.Timeout(30 * time.Second))

	// Public surface: browsing, donating, and the auth doors.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		d.Catalog.Register(r)
		d.Donation.Register(r)
		d.Auth.Register(r)
	})

	// Token-gated user surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(d.Validator, d.Logger))
		d.Auth.RegisterProtected(r)
		d.Shelter.Register(r)
	})

	// Staff review surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(d.Validator, d.Logger))
		r.Use(middleware.RequireStaff(d.Logger))
		d.Shelter.RegisterStaff(r)
	})

	r.Get("/healthz", d.Health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Package api exposes the entity stores and their derived views over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/preferences"
	"github.com/prudhvinik1/estatesync/internal/services"
)

type Server struct {
	stores *services.Stores
	theme  *preferences.ThemeStore
	log    zerolog.Logger
}

func NewServer(stores *services.Stores, theme *preferences.ThemeStore, log zerolog.Logger) *Server {
	return &Server{stores: stores, theme: theme, log: log}
}

// Router builds the HTTP handler with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(recoverer(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/buildings", func(r chi.Router) {
			r.Get("/options", s.buildingOptions)
			newResource[models.Building](s.stores.Buildings, s.stores, s.log).mount(r, nil)
		})
		r.Route("/properties", func(r chi.Router) {
			newResource[models.Property](s.stores.Properties, s.stores, s.log).mount(r, nil)
		})
		r.Route("/tenants", func(r chi.Router) {
			newResource[models.Tenant](s.stores.Tenants, s.stores, s.log).mount(r, nil)
		})
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/expiring", s.expiringContracts)
			newResource[models.Contract](s.stores.Contracts, s.stores, s.log).mount(r, nil)
		})
		r.Route("/tasks", func(r chi.Router) {
			tasks := newResource[models.Task](s.stores.Tasks, s.stores, s.log)
			tasks.validate = validateTask
			tasks.mount(r, nil)
			r.Post("/{id}/toggle", s.toggleTask)
		})
		r.Route("/activities", func(r chi.Router) {
			newResource[models.Activity](s.stores.Activities, s.stores, s.log).mount(r, nil)
		})
		r.Route("/rent-payments", func(r chi.Router) {
			payments := newResource[models.RentPayment](s.stores.RentPayments, s.stores, s.log)
			payments.validate = validateRentPayment
			r.Get("/summary", s.paymentSummary)
			payments.mount(r, s.listRentPayments(payments))
		})

		r.Get("/dashboard", s.dashboard)
		r.Post("/seed", s.seed)

		r.Route("/preferences/theme", func(r chi.Router) {
			r.Get("/", s.getTheme)
			r.Put("/", s.putTheme)
			r.Post("/toggle", s.toggleTheme)
		})
	})

	return r
}

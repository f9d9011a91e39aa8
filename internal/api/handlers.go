package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/utils"
	"github.com/prudhvinik1/estatesync/internal/views"
)

func validateTask(t models.Task) error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.Due != "" {
		if _, err := time.Parse(time.DateOnly, t.Due); err != nil {
			return errors.Errorf("due must be YYYY-MM-DD, got %q", t.Due)
		}
	}
	return nil
}

func validateRentPayment(p models.RentPayment) error {
	if p.TenantID == "" {
		return errors.New("tenantId is required")
	}
	if !utils.ValidPaymentMonth(p.PaymentMonth) {
		return errors.Errorf("paymentMonth must be YYYY-MM, got %q", p.PaymentMonth)
	}
	return nil
}

// listRentPayments GET /api/rent-payments[?tenantId=]
func (s *Server) listRentPayments(payments *resource[models.RentPayment]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.URL.Query().Get("tenantId")
		if tenantID == "" {
			payments.list(w, r)
			return
		}

		fresh := s.stores.RentPayments.FetchByTenant(r.Context(), tenantID)
		if msg := s.stores.RentPayments.Err(); msg != "" {
			writeError(w, s.log, http.StatusBadGateway, msg)
			return
		}
		writeJSON(w, s.log, http.StatusOK, fresh)
	}
}

type paymentSummaryResponse struct {
	views.PaymentSummary
	Months []string `json:"months"`
}

// paymentSummary GET /api/rent-payments/summary[?year=]
func (s *Server) paymentSummary(w http.ResponseWriter, r *http.Request) {
	months := utils.CurrentYearPaymentMonths(s.stores.Now())
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			writeError(w, s.log, http.StatusBadRequest, "year must be a four digit number")
			return
		}
		months = utils.PaymentMonthsForYear(year)
	}

	s.stores.EnsureLoaded(r.Context(), s.stores.RentPayments)
	writeJSON(w, s.log, http.StatusOK, paymentSummaryResponse{
		PaymentSummary: views.SummarizePayments(s.stores.RentPayments.Items()),
		Months:         months,
	})
}

// buildingOptions GET /api/buildings/options
func (s *Server) buildingOptions(w http.ResponseWriter, r *http.Request) {
	s.stores.EnsureLoaded(r.Context(), s.stores.Buildings)
	writeJSON(w, s.log, http.StatusOK, views.BuildingOptions(s.stores.Buildings.Items()))
}

// expiringContracts GET /api/contracts/expiring
func (s *Server) expiringContracts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, s.stores.ExpiringContracts(r.Context()))
}

// toggleTask POST /api/tasks/{id}/toggle
func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.stores.EnsureLoaded(r.Context(), s.stores.Tasks)

	if err := s.stores.Tasks.Toggle(r.Context(), id); err != nil {
		writeStoreError(w, s.log, err, s.stores.Tasks.Kind().UpdateFailed())
		return
	}

	task, ok := s.stores.Tasks.Get(id)
	if !ok {
		writeError(w, s.log, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, s.log, http.StatusOK, task)
}

// dashboard GET /api/dashboard
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, s.stores.Dashboard(r.Context()))
}

// seed POST /api/seed
func (s *Server) seed(w http.ResponseWriter, r *http.Request) {
	if err := s.stores.SeedAll(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("seeding failed")
		writeStoreError(w, s.log, err, "Failed to seed sample data")
		return
	}
	writeJSON(w, s.log, http.StatusOK, map[string]int{
		"buildings":    s.stores.Buildings.Len(),
		"properties":   s.stores.Properties.Len(),
		"tenants":      s.stores.Tenants.Len(),
		"contracts":    s.stores.Contracts.Len(),
		"tasks":        s.stores.Tasks.Len(),
		"activities":   s.stores.Activities.Len(),
		"rentPayments": s.stores.RentPayments.Len(),
	})
}

type themeBody struct {
	DarkMode bool `json:"darkMode"`
}

// getTheme GET /api/preferences/theme
func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, themeBody{DarkMode: s.theme.IsDark()})
}

// putTheme PUT /api/preferences/theme
func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, s.log, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.theme.SetDark(r.Context(), body.DarkMode)
	writeJSON(w, s.log, http.StatusOK, themeBody{DarkMode: s.theme.IsDark()})
}

// toggleTheme POST /api/preferences/theme/toggle
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, themeBody{DarkMode: s.theme.Toggle(r.Context())})
}

package services

import (
	"context"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/views"
)

// Dashboard loads properties and contracts if needed and returns the
// headline figures, with renewals counted from contracts expiring soon.
func (s *Stores) Dashboard(ctx context.Context) models.DashboardStats {
	s.loader.EnsureLoaded(ctx, s.Properties)
	s.loader.EnsureLoaded(ctx, s.Contracts)

	now := s.now()
	stats := views.DashboardStats(s.Properties.Items(), now)
	stats.PendingRenewals = len(views.ExpiringSoon(s.Contracts.Items(), now, s.expiringWindow))
	return stats
}

func (s *Stores) ExpiringContracts(ctx context.Context) []models.Contract {
	s.loader.EnsureLoaded(ctx, s.Contracts)
	return views.ExpiringSoon(s.Contracts.Items(), s.now(), s.expiringWindow)
}

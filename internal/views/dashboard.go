package views

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prudhvinik1/estatesync/internal/models"
)

const newPropertyWindow = 30 * 24 * time.Hour

var lastMonthRatio = decimal.NewFromFloat(0.9)

// DashboardStats derives the headline figures from the property list alone.
// Rental income comes from rented property prices, not from recorded rent
// payments. PendingRenewals is left for the caller, which has the contracts.
func DashboardStats(properties []models.Property, now time.Time) models.DashboardStats {
	income := TotalMonthlyRent(properties)
	cutoff := now.Add(-newPropertyWindow)

	newProperties := Filter(properties, func(p models.Property) bool {
		return p.CreatedAt.After(cutoff)
	})

	return models.DashboardStats{
		TotalRentalIncome: income,
		TotalProperties:   len(properties),
		ActiveContracts:   len(OccupiedProperties(properties)),
		LastMonthIncome:   income.Mul(lastMonthRatio).Round(0),
		NewProperties:     len(newProperties),
	}
}

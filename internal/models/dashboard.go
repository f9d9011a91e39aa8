package models

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalRentalIncome decimal.Decimal `json:"totalRentalIncome"`
	TotalProperties   int             `json:"totalProperties"`
	ActiveContracts   int             `json:"activeContracts"`
	LastMonthIncome   decimal.Decimal `json:"lastMonthIncome"`
	NewProperties     int             `json:"newProperties"`
	PendingRenewals   int             `json:"pendingRenewals"`
}

package views

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prudhvinik1/estatesync/internal/models"
)

// DefaultExpiringWindow is how far ahead a contract end counts as expiring soon.
const DefaultExpiringWindow = 30 * 24 * time.Hour

func ActiveContracts(contracts []models.Contract) []models.Contract {
	return Filter(contracts, func(c models.Contract) bool { return c.IsActive })
}

// ExpiringSoon returns active contracts ending within [now, now+window].
func ExpiringSoon(contracts []models.Contract, now time.Time, window time.Duration) []models.Contract {
	horizon := now.Add(window)
	return Filter(contracts, func(c models.Contract) bool {
		return c.IsActive && !c.EndDate.Before(now) && !c.EndDate.After(horizon)
	})
}

// TotalMonthlyIncome sums the amounts of active leases.
func TotalMonthlyIncome(contracts []models.Contract) decimal.Decimal {
	leases := Filter(contracts, func(c models.Contract) bool {
		return c.IsActive && c.ContractType == models.ContractTypeLease
	})
	return Sum(leases, func(c models.Contract) decimal.Decimal { return c.Amount })
}

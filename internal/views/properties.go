package views

import (
	"github.com/shopspring/decimal"

	"github.com/prudhvinik1/estatesync/internal/models"
)

var monthsPerYear = decimal.NewFromInt(12)

func OccupiedProperties(properties []models.Property) []models.Property {
	return Filter(properties, func(p models.Property) bool { return p.Status == models.StatusRented })
}

func VacantProperties(properties []models.Property) []models.Property {
	return Filter(properties, func(p models.Property) bool { return p.Status == models.StatusAvailable })
}

// TotalMonthlyRent treats the price of a rented property as its annual rent.
func TotalMonthlyRent(properties []models.Property) decimal.Decimal {
	return Sum(OccupiedProperties(properties), func(p models.Property) decimal.Decimal {
		return p.Price.Div(monthsPerYear)
	})
}

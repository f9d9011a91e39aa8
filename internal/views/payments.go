package views

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prudhvinik1/estatesync/internal/models"
)

func paymentTenant(p models.RentPayment) string          { return p.TenantID }
func paymentMonth(p models.RentPayment) string           { return p.PaymentMonth }
func paymentAmount(p models.RentPayment) decimal.Decimal { return p.Amount }

// PaymentsByTenant groups payments by tenant, newest payment date first.
func PaymentsByTenant(payments []models.RentPayment) map[string][]models.RentPayment {
	groups := GroupBy(payments, paymentTenant)
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PaymentDate.After(group[j].PaymentDate)
		})
	}
	return groups
}

// PaymentsByMonth groups payments by their YYYY-MM month in input order.
func PaymentsByMonth(payments []models.RentPayment) map[string][]models.RentPayment {
	return GroupBy(payments, paymentMonth)
}

func TotalPaymentsByTenant(payments []models.RentPayment) map[string]decimal.Decimal {
	return SumBy(payments, paymentTenant, paymentAmount)
}

func TotalPaymentsByMonth(payments []models.RentPayment) map[string]decimal.Decimal {
	return SumBy(payments, paymentMonth, paymentAmount)
}

func TotalPayments(payments []models.RentPayment) decimal.Decimal {
	return Sum(payments, paymentAmount)
}

// PaymentSummary bundles the payment aggregates served to the UI.
type PaymentSummary struct {
	Total         decimal.Decimal                 `json:"total"`
	TotalByTenant map[string]decimal.Decimal      `json:"totalByTenant"`
	TotalByMonth  map[string]decimal.Decimal      `json:"totalByMonth"`
	ByTenant      map[string][]models.RentPayment `json:"byTenant"`
	ByMonth       map[string][]models.RentPayment `json:"byMonth"`
}

func SummarizePayments(payments []models.RentPayment) PaymentSummary {
	return PaymentSummary{
		Total:         TotalPayments(payments),
		TotalByTenant: TotalPaymentsByTenant(payments),
		TotalByMonth:  TotalPaymentsByMonth(payments),
		ByTenant:      PaymentsByTenant(payments),
		ByMonth:       PaymentsByMonth(payments),
	}
}

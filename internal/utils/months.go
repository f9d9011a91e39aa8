package utils

import (
	"fmt"
	"time"
)

// MonthLayout is the layout of payment months, e.g. 2024-01.
const MonthLayout = "2006-01"

func PaymentMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// PaymentMonthsForYear returns the twelve months of year in order.
func PaymentMonthsForYear(year int) []string {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%04d-%02d", year, m))
	}
	return months
}

func CurrentYearPaymentMonths(now time.Time) []string {
	return PaymentMonthsForYear(now.Year())
}

// MonthsBack returns the month offset months before t, counting 0 as t's month.
func MonthsBack(t time.Time, offset int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -offset, 0)
}

// ValidPaymentMonth reports whether s is a YYYY-MM month.
func ValidPaymentMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil && len(s) == len(MonthLayout)
}

// Package views computes derived values from store snapshots. Every function
// is pure: it reads its arguments and allocates fresh results.
package views

import "github.com/shopspring/decimal"

// GroupBy partitions items by key, preserving input order inside each group.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		out[k] = append(out[k], item)
	}
	return out
}

// SumBy adds amount(item) per key.
func SumBy[T any, K comparable](items []T, key func(T) K, amount func(T) decimal.Decimal) map[K]decimal.Decimal {
	out := make(map[K]decimal.Decimal)
	for _, item := range items {
		k := key(item)
		out[k] = out[k].Add(amount(item))
	}
	return out
}

func Sum[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

func Filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

package models

import "github.com/shopspring/decimal"

// Money fields are shared with other clients of the collections, which read
// them as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

package store

import "github.com/prudhvinik1/estatesync/internal/models"

// Kind describes one entity kind: its remote collection and the nouns used
// in the fixed failure messages.
type Kind struct {
	Collection string
	Singular   string
	Plural     string
	// Transient fields are attached at read time and stripped before writes.
	Transient []string
}

func (k Kind) LoadFailed() string   { return "Failed to load " + k.Plural }
func (k Kind) AddFailed() string    { return "Failed to add " + k.Singular }
func (k Kind) UpdateFailed() string { return "Failed to update " + k.Singular }
func (k Kind) DeleteFailed() string { return "Failed to delete " + k.Singular }

var (
	Buildings    = Kind{Collection: "buildings", Singular: "building", Plural: "buildings"}
	Properties   = Kind{Collection: "properties", Singular: "property", Plural: "properties"}
	Tenants      = Kind{Collection: "tenants", Singular: "tenant", Plural: "tenants"}
	Contracts    = Kind{Collection: "contracts", Singular: "contract", Plural: "contracts"}
	Tasks        = Kind{Collection: "tasks", Singular: "task", Plural: "tasks"}
	Activities   = Kind{Collection: "activities", Singular: "activity", Plural: "activities"}
	RentPayments = Kind{
		Collection: "rentPayments",
		Singular:   "rent payment",
		Plural:     "rent payments",
		Transient:  models.RentPaymentDisplayFields,
	}
)

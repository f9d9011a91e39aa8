package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeShop      PropertyType = "Shop"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusRented    PropertyStatus = "rented"
)

// Property is a listed unit. For rented properties Price holds the annual rent.
type Property struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Type         PropertyType    `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Status       PropertyStatus  `json:"status"`
	SquareMeters float64         `json:"squareMeters,omitempty"`
	ContactPhone string          `json:"contactPhone,omitempty"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	BuildingID   string          `json:"buildingId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (p Property) EntityID() string { return p.ID }
